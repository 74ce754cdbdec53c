package annotations

import (
	"fmt"
	"go/token"
	"sort"
	"sync"
)

// Registry defines the interface for managing marker schemas
type Registry interface {
	// Register a marker schema in the canonical namespace
	Register(schema MarkerSchema) error

	// AddAlias makes namespace resolve to the canonical namespace
	AddAlias(namespace string) error

	// Resolve looks up a marker by namespace and name
	Resolve(namespace, name string) (MarkerSchema, bool)

	// IsMarkerNamespace reports whether namespace is canonical or an alias
	IsMarkerNamespace(namespace string) bool

	// Schemas returns all registered schemas ordered by kind
	Schemas() []MarkerSchema

	// Aliases returns the registered namespace aliases in sorted order
	Aliases() []string
}

// registry is the concrete implementation of Registry
type registry struct {
	mu      sync.RWMutex
	schemas map[string]MarkerSchema // keyed by canonical qualified name
	aliases map[string]bool
}

// NewRegistry creates an empty marker registry
func NewRegistry() Registry {
	return &registry{
		schemas: make(map[string]MarkerSchema),
		aliases: make(map[string]bool),
	}
}

// NewBuiltinRegistry creates a registry holding the built-in markers
func NewBuiltinRegistry(aliases ...string) (Registry, error) {
	r := NewRegistry()
	if err := RegisterBuiltinMarkers(r); err != nil {
		return nil, err
	}
	for _, alias := range aliases {
		if err := r.AddAlias(alias); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var (
	defaultRegistry     Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry of built-in markers
func DefaultRegistry() Registry {
	defaultRegistryOnce.Do(func() {
		r, err := NewBuiltinRegistry()
		if err != nil {
			panic(fmt.Sprintf("annotations: built-in markers failed to register: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Register adds a marker schema to the registry
func (r *registry) Register(schema MarkerSchema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !token.IsIdentifier(schema.Name) {
		return fmt.Errorf("marker name %q is not an identifier", schema.Name)
	}
	if schema.MaxArgs < 0 {
		return fmt.Errorf("marker %s: MaxArgs must not be negative", schema.Name)
	}

	key := QualifiedName(CanonicalNamespace, schema.Name)
	if _, exists := r.schemas[key]; exists {
		return fmt.Errorf("marker %s is already registered", key)
	}
	for _, existing := range r.schemas {
		if existing.Kind == schema.Kind {
			return fmt.Errorf("marker kind %s is already registered as %s", schema.Kind, existing.Name)
		}
	}

	r.schemas[key] = schema
	return nil
}

// AddAlias makes namespace an alternative spelling of the canonical namespace
func (r *registry) AddAlias(namespace string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !token.IsIdentifier(namespace) {
		return fmt.Errorf("namespace alias %q is not an identifier", namespace)
	}
	if namespace == CanonicalNamespace {
		return nil
	}
	if namespace == "go" || namespace == "line" {
		return fmt.Errorf("namespace alias %q is reserved by the Go toolchain", namespace)
	}
	r.aliases[namespace] = true
	return nil
}

// Resolve looks up a marker by namespace and name
func (r *registry) Resolve(namespace, name string) (MarkerSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if namespace != CanonicalNamespace && !r.aliases[namespace] {
		return MarkerSchema{}, false
	}
	schema, ok := r.schemas[QualifiedName(CanonicalNamespace, name)]
	return schema, ok
}

// IsMarkerNamespace reports whether namespace is canonical or an alias
func (r *registry) IsMarkerNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return namespace == CanonicalNamespace || r.aliases[namespace]
}

// Schemas returns all registered schemas ordered by kind
func (r *registry) Schemas() []MarkerSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemas := make([]MarkerSchema, 0, len(r.schemas))
	for _, schema := range r.schemas {
		schemas = append(schemas, schema)
	}
	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Kind < schemas[j].Kind
	})
	return schemas
}

// Aliases returns the registered namespace aliases in sorted order
func (r *registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make([]string, 0, len(r.aliases))
	for alias := range r.aliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
