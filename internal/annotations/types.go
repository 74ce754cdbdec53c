package annotations

import (
	"fmt"

	"github.com/qian-o/CodeGenerator/internal/models"
)

// CanonicalNamespace is the namespace of the built-in markers
const CanonicalNamespace = "notify"

// MarkerKind represents the kind of marker
type MarkerKind int

const (
	ObservableField MarkerKind = iota
	CommandMethod
)

// String returns the string representation of the marker kind
func (k MarkerKind) String() string {
	switch k {
	case ObservableField:
		return "ObservableField"
	case CommandMethod:
		return "CommandMethod"
	default:
		return "unknown"
	}
}

// ArgKind is the literal kind of a directive argument
type ArgKind int

const (
	StringArg ArgKind = iota
	IdentArg
	NumberArg
)

// String returns the string representation of the argument kind
func (k ArgKind) String() string {
	switch k {
	case StringArg:
		return "string"
	case IdentArg:
		return "identifier"
	case NumberArg:
		return "number"
	default:
		return "unknown"
	}
}

// Arg is one positional directive argument
type Arg struct {
	Kind  ArgKind
	Value string // unquoted for strings, raw text otherwise
}

// Directive is a parsed //namespace:name comment
type Directive struct {
	Namespace string
	Name      string
	Args      []Arg
	Location  models.SourcePosition
	Raw       string
}

// QualifiedName returns namespace:name as written
func (d *Directive) QualifiedName() string {
	return QualifiedName(d.Namespace, d.Name)
}

// FirstArg returns the first argument if any
func (d *Directive) FirstArg() (Arg, bool) {
	if len(d.Args) == 0 {
		return Arg{}, false
	}
	return d.Args[0], true
}

// QualifiedName joins a namespace and a marker name
func QualifiedName(namespace, name string) string {
	return fmt.Sprintf("%s:%s", namespace, name)
}

// Marker is a directive that resolved to a registered schema
type Marker struct {
	Schema    MarkerSchema
	Directive *Directive
}

// Kind returns the marker kind
func (m Marker) Kind() MarkerKind {
	return m.Schema.Kind
}
