package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrKeyConflict is returned when a key is registered again with a different value
var ErrKeyConflict = errors.New("key already registered with a different value")

// RegistryValidator is a function that validates a key-value pair before registration
type RegistryValidator[K comparable, V any] func(key K, value V, existing map[K]V) error

// BaseRegistry provides a generic, thread-safe registry that remembers
// registration order
type BaseRegistry[K comparable, V any] struct {
	mu            sync.RWMutex
	items         map[K]V
	order         []K
	validator     RegistryValidator[K, V]
	registryName  string
	keyDescriptor string // e.g. "artifact id"
}

// NewBaseRegistry creates a new base registry with the specified configuration
func NewBaseRegistry[K comparable, V any](registryName, keyDesc string) *BaseRegistry[K, V] {
	return &BaseRegistry[K, V]{
		items:         make(map[K]V),
		registryName:  registryName,
		keyDescriptor: keyDesc,
	}
}

// SetValidator sets the validation function for this registry
func (r *BaseRegistry[K, V]) SetValidator(validator RegistryValidator[K, V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = validator
}

// Register adds an item to the registry. Registering a key again with an
// equal value is a no-op and reports added as false; a different value
// fails with ErrKeyConflict.
func (r *BaseRegistry[K, V]) Register(key K, value V, equal func(a, b V) bool) (added bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[key]; ok {
		if equal(existing, value) {
			return false, nil
		}
		return false, fmt.Errorf("%s registry: %s '%v': %w", r.registryName, r.keyDescriptor, key, ErrKeyConflict)
	}

	if r.validator != nil {
		if err := r.validator(key, value, r.items); err != nil {
			return false, fmt.Errorf("%s registry: %w", r.registryName, err)
		}
	}

	r.items[key] = value
	r.order = append(r.order, key)
	return true, nil
}

// Values returns all values in registration order
func (r *BaseRegistry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := make([]V, 0, len(r.order))
	for _, key := range r.order {
		values = append(values, r.items[key])
	}
	return values
}
