package annotations

import "fmt"

// MarkerSchema describes one marker
type MarkerSchema struct {
	Kind        MarkerKind
	Name        string // directive name within the namespace
	Target      string // declaration kind the marker applies to
	MaxArgs     int    // arguments beyond MaxArgs are ignored
	Description string
	Examples    []string
}

// ObservableFieldSchema defines the schema for //notify:observable markers
var ObservableFieldSchema = MarkerSchema{
	Kind:        ObservableField,
	Name:        "observable",
	Target:      "struct field",
	MaxArgs:     1,
	Description: "Generates a getter and a notifying setter for the field. The optional argument overrides the property name.",
	Examples: []string{
		"//notify:observable",
		"//notify:observable Username",
		`//notify:observable "Username"`,
	},
}

// CommandMethodSchema defines the schema for //notify:command markers
var CommandMethodSchema = MarkerSchema{
	Kind:        CommandMethod,
	Name:        "command",
	Target:      "method",
	MaxArgs:     0,
	Description: "Generates a lazily constructed <Method>Command accessor wrapping the method. The method takes at most one parameter and returns nothing.",
	Examples: []string{
		"//notify:command",
	},
}

// GetBuiltinSchemas returns all built-in marker schemas
func GetBuiltinSchemas() []MarkerSchema {
	return []MarkerSchema{
		ObservableFieldSchema,
		CommandMethodSchema,
	}
}

// RegisterBuiltinMarkers registers all built-in marker schemas with the given registry
func RegisterBuiltinMarkers(registry Registry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema); err != nil {
			return fmt.Errorf("failed to register %s marker: %w", schema.Kind, err)
		}
	}
	return nil
}
