// Package scanner discovers marked declarations in a type-checked package.
package scanner

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/qian-o/CodeGenerator/internal/annotations"
	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/naming"
)

// EventFieldName is the embedded field that provides RaisePropertyChanged
const EventFieldName = "PropertyChangedEvent"

// Result is the output of one scan
type Result struct {
	Candidates  models.Candidates
	Diagnostics []models.Diagnostic
}

// Scanner collects field and method candidates from a package
type Scanner struct {
	parser *annotations.DirectiveParser
}

// New creates a scanner recognising the markers of registry
func New(registry annotations.Registry) *Scanner {
	return &Scanner{parser: annotations.NewDirectiveParser(registry)}
}

// structInfo is what the scan needs to know about a marked struct type
type structInfo struct {
	pos     models.SourcePosition
	embeds  map[string]bool
	generic bool
}

type scan struct {
	*Scanner
	pkg      *Package
	resolver *Resolver
	result   *Result
	structs  map[string]*structInfo
	order    int
}

// Scan walks every file of pkg once and returns the candidates in encounter order
func (s *Scanner) Scan(pkg *Package) *Result {
	sc := &scan{
		Scanner:  s,
		pkg:      pkg,
		resolver: NewResolver(pkg),
		result:   &Result{},
		structs:  make(map[string]*structInfo),
	}

	Walk(pkg.Files, sc.visit)
	sc.checkEmbeds()
	return sc.result
}

func (sc *scan) visit(nc NodeContext) bool {
	switch n := nc.Node.(type) {
	case *ast.TypeSpec:
		sc.recordStruct(nc, n)
	case *ast.Field:
		sc.visitField(nc, n)
	case *ast.FuncDecl:
		sc.visitFunc(n)
		return false
	case *ast.FuncLit:
		return false
	}
	return true
}

func (sc *scan) recordStruct(nc NodeContext, spec *ast.TypeSpec) {
	st, ok := spec.Type.(*ast.StructType)
	if !ok || !isFileScope(nc, 1) {
		return
	}

	info := &structInfo{
		pos:     sc.position(spec.Name.Pos()),
		embeds:  make(map[string]bool),
		generic: spec.TypeParams != nil && spec.TypeParams.NumFields() > 0,
	}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			info.embeds[embeddedName(f.Type)] = true
		}
	}
	sc.structs[spec.Name.Name] = info
}

func (sc *scan) visitField(nc NodeContext, field *ast.Field) {
	if _, ok := nc.Parent(1).(*ast.FieldList); !ok {
		return
	}
	if _, ok := nc.Parent(2).(*ast.StructType); !ok {
		return
	}
	spec, ok := nc.Parent(3).(*ast.TypeSpec)
	if !ok || !isFileScope(nc, 4) {
		return
	}

	marker := sc.findMarker(annotations.ObservableField, field.Doc, field.Comment)
	if marker == nil || len(field.Names) == 0 {
		return
	}

	if info := sc.structs[spec.Name.Name]; info != nil && info.generic {
		sc.warn(marker.Directive.Location, "%s: generic type %s is not supported", marker.Directive.QualifiedName(), spec.Name.Name)
		return
	}

	obj, ok := sc.resolver.Object(spec.Name)
	if !ok {
		return
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return
	}
	enclosing := sc.resolver.Descriptor(named)

	for _, name := range field.Names {
		v, ok := sc.resolver.Field(name)
		if !ok {
			continue
		}
		typ, imports := sc.resolver.Render(v.Type())

		candidate := models.FieldCandidate{
			Name:      v.Name(),
			Type:      typ,
			Enclosing: enclosing,
			Order:     sc.next(),
			Pos:       sc.resolver.Position(v),
			Imports:   imports,
		}
		if arg, ok := marker.Directive.FirstArg(); ok {
			candidate.Override = arg.Value
			candidate.HasOverride = true
		}
		sc.result.Candidates.Fields = append(sc.result.Candidates.Fields, candidate)
	}
}

func (sc *scan) visitFunc(decl *ast.FuncDecl) {
	if decl.Recv == nil || decl.Doc == nil {
		return
	}

	marker := sc.findMarker(annotations.CommandMethod, decl.Doc)
	if marker == nil {
		return
	}

	fn, named, ok := sc.resolver.Method(decl)
	if !ok {
		return
	}
	if named.TypeParams().Len() > 0 {
		sc.warn(marker.Directive.Location, "%s: generic type %s is not supported", marker.Directive.QualifiedName(), named.Obj().Name())
		return
	}

	sig := fn.Type().(*types.Signature)
	candidate := models.MethodCandidate{
		Name:      fn.Name(),
		Results:   sig.Results().Len(),
		Variadic:  sig.Variadic(),
		Enclosing: sc.resolver.Descriptor(named),
		Order:     sc.next(),
		Pos:       sc.resolver.Position(fn),
	}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		typ, imports := sc.resolver.Render(p.Type())
		candidate.Params = append(candidate.Params, models.Parameter{
			Name:    p.Name(),
			Type:    typ,
			Imports: imports,
		})
	}
	sc.result.Candidates.Methods = append(sc.result.Candidates.Methods, candidate)
}

// findMarker returns the first marker of kind in the comment groups.
// Malformed directives and markers on the wrong declaration are reported.
func (sc *scan) findMarker(kind annotations.MarkerKind, groups ...*ast.CommentGroup) *annotations.Marker {
	var found *annotations.Marker
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, c := range group.List {
			pos := sc.position(c.Slash)
			marker, err := sc.parser.ParseMarker(c.Text, pos)
			if err != nil {
				sc.warn(pos, "ignoring directive: %s", errors.Describe(err))
				continue
			}
			if marker == nil {
				continue
			}
			if marker.Kind() != kind {
				sc.warn(pos, "%s does not apply to a %s", marker.Directive.QualifiedName(), targetOf(kind))
				continue
			}
			if found == nil {
				found = marker
			}
		}
	}
	return found
}

// checkEmbeds reports marked types that lack the embedded fields the
// generated members rely on
func (sc *scan) checkEmbeds() {
	warned := make(map[string]bool)

	for _, f := range sc.result.Candidates.Fields {
		name := f.Enclosing.Name
		if info := sc.structs[name]; info != nil && !info.embeds[EventFieldName] && !warned[name+EventFieldName] {
			warned[name+EventFieldName] = true
			sc.warn(info.pos, "type %s must embed %s for its generated setters", name, EventFieldName)
		}
	}

	for _, m := range sc.result.Candidates.Methods {
		name := m.Enclosing.Name
		companion := naming.CompanionName(name)
		if warned[name+companion] {
			continue
		}
		info := sc.structs[name]
		if info == nil {
			warned[name+companion] = true
			sc.warn(m.Pos, "type %s is not a struct and cannot embed %s", name, companion)
			continue
		}
		if !info.embeds[companion] {
			warned[name+companion] = true
			sc.warn(info.pos, "type %s must embed %s to hold its generated commands", name, companion)
		}
	}
}

func (sc *scan) next() int {
	o := sc.order
	sc.order++
	return o
}

func (sc *scan) warn(pos models.SourcePosition, format string, args ...any) {
	sc.result.Diagnostics = append(sc.result.Diagnostics, models.Diagnostic{
		Severity: models.SeverityWarning,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (sc *scan) position(pos token.Pos) models.SourcePosition {
	p := sc.pkg.Fset.Position(pos)
	return models.SourcePosition{File: p.Filename, Line: p.Line, Column: p.Column}
}

// isFileScope reports whether the node at depth d of the stack sits in a
// top-level declaration
func isFileScope(nc NodeContext, d int) bool {
	if _, ok := nc.Parent(d).(*ast.GenDecl); !ok {
		return false
	}
	_, ok := nc.Parent(d + 1).(*ast.File)
	return ok
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}

func targetOf(kind annotations.MarkerKind) string {
	if kind == annotations.CommandMethod {
		return "method"
	}
	return "struct field"
}
