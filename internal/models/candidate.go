package models

import (
	"fmt"
	"sort"
)

// TypeDescriptor identifies the type that owns a candidate. Two descriptors
// are equal when namespace and name match, however many declarations refer to
// the type.
type TypeDescriptor struct {
	Namespace string // package import path
	Name      string // type name
}

// String returns the qualified type name
func (t TypeDescriptor) String() string {
	if t.Namespace == "" {
		return t.Name
	}
	return fmt.Sprintf("%s.%s", t.Namespace, t.Name)
}

// SourcePosition points at the declaration a candidate came from
type SourcePosition struct {
	File   string
	Line   int
	Column int
}

// String returns file:line:column
func (p SourcePosition) String() string {
	if p.File == "" {
		return "-"
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// FieldCandidate is a struct field carrying the observable marker
type FieldCandidate struct {
	Name        string         // backing field name
	Type        string         // declared type rendered relative to the package
	Override    string         // explicit property name from the marker
	HasOverride bool           // whether Override was given
	Enclosing   TypeDescriptor // owning struct type
	Order       int            // encounter order within the pass
	Pos         SourcePosition
	Imports     []Import // imports needed by Type
}

// Parameter is one parameter of a command method
type Parameter struct {
	Name    string
	Type    string
	Imports []Import
}

// Import is a package a rendered type refers to
type Import struct {
	Path string
	Name string // local alias, empty when the declared package name is used
}

// LocalName returns the name the package is referred to by in generated code
func (i Import) LocalName(declared string) string {
	if i.Name != "" {
		return i.Name
	}
	return declared
}

// MethodCandidate is a method carrying the command marker
type MethodCandidate struct {
	Name      string
	Params    []Parameter
	Results   int  // number of result values
	Variadic  bool // last parameter is variadic
	Enclosing TypeDescriptor
	Order     int
	Pos       SourcePosition
}

// Imports returns the imports needed by the method's parameters, sorted by path
func (m MethodCandidate) Imports() []Import {
	seen := make(map[string]bool)
	var imports []Import
	for _, p := range m.Params {
		for _, imp := range p.Imports {
			if !seen[imp.Path] {
				seen[imp.Path] = true
				imports = append(imports, imp)
			}
		}
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })
	return imports
}

// Candidates holds the two ordered lists produced by one scan
type Candidates struct {
	Fields  []FieldCandidate
	Methods []MethodCandidate
}

// Len returns the total number of candidates
func (c *Candidates) Len() int {
	return len(c.Fields) + len(c.Methods)
}
