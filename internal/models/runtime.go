package models

import "fmt"

// RuntimeMode selects how generated code reaches the runtime support types
type RuntimeMode string

const (
	// RuntimeShim injects the runtime into each package as a generated file
	RuntimeShim RuntimeMode = "shim"
	// RuntimeImport makes generated code import the runtime package
	RuntimeImport RuntimeMode = "import"
)

// ParseRuntimeMode validates a runtime mode name
func ParseRuntimeMode(s string) (RuntimeMode, error) {
	switch RuntimeMode(s) {
	case RuntimeShim, RuntimeImport:
		return RuntimeMode(s), nil
	case "":
		return RuntimeShim, nil
	}
	return "", fmt.Errorf("unknown runtime mode %q (want %q or %q)", s, RuntimeShim, RuntimeImport)
}
