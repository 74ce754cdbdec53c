package scanner

import (
	"fmt"
	"go/ast"
	"go/types"
	"sort"

	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/pkg/notify"
)

// Resolver maps declarations of a package to their type-checked objects.
// It also assigns the local names imported packages get in generated files,
// so one resolver serves one pass.
type Resolver struct {
	pkg *Package

	imports map[string]models.Import // by path
	locals  map[string]string        // local name -> path
}

// NewResolver creates a resolver for pkg
func NewResolver(pkg *Package) *Resolver {
	return &Resolver{
		pkg:     pkg,
		imports: make(map[string]models.Import),
		locals:  make(map[string]string),
	}
}

// Object returns the object an identifier declares
func (r *Resolver) Object(ident *ast.Ident) (types.Object, bool) {
	if ident == nil {
		return nil, false
	}
	obj, ok := r.pkg.Info.Defs[ident]
	return obj, ok && obj != nil
}

// Field returns the field variable declared by ident
func (r *Resolver) Field(ident *ast.Ident) (*types.Var, bool) {
	obj, ok := r.Object(ident)
	if !ok {
		return nil, false
	}
	v, ok := obj.(*types.Var)
	return v, ok && v.IsField()
}

// Method returns the method declared by decl and the named type that owns it
func (r *Resolver) Method(decl *ast.FuncDecl) (*types.Func, *types.Named, bool) {
	obj, ok := r.Object(decl.Name)
	if !ok {
		return nil, nil, false
	}
	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, nil, false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return nil, nil, false
	}

	recv := sig.Recv().Type()
	if ptr, ok := recv.(*types.Pointer); ok {
		recv = ptr.Elem()
	}
	named, ok := recv.(*types.Named)
	if !ok {
		return nil, nil, false
	}
	return fn, named, true
}

// Descriptor returns the type descriptor of a named type
func (r *Resolver) Descriptor(named *types.Named) models.TypeDescriptor {
	obj := named.Obj()
	ns := r.pkg.Path
	if obj.Pkg() != nil {
		ns = obj.Pkg().Path()
	}
	return models.TypeDescriptor{Namespace: ns, Name: obj.Name()}
}

// Position converts a token position to a source position
func (r *Resolver) Position(obj types.Object) models.SourcePosition {
	p := r.pkg.Fset.Position(obj.Pos())
	return models.SourcePosition{File: p.Filename, Line: p.Line, Column: p.Column}
}

// Render prints t as it is written inside a generated file of the package
// and returns the imports the rendering refers to, sorted by path
func (r *Resolver) Render(t types.Type) (string, []models.Import) {
	seen := make(map[string]models.Import)
	qualifier := func(p *types.Package) string {
		if p == r.pkg.Types {
			return ""
		}
		imp := r.importFor(p)
		seen[imp.Path] = imp
		return imp.LocalName(p.Name())
	}

	s := types.TypeString(t, qualifier)

	imports := make([]models.Import, 0, len(seen))
	for _, imp := range seen {
		imports = append(imports, imp)
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })
	return s, imports
}

// importFor returns the import of p. The first package keeps its declared
// name; a later package with the same name, or a name declared at package
// scope, is imported under a numbered alias.
func (r *Resolver) importFor(p *types.Package) models.Import {
	if imp, ok := r.imports[p.Path()]; ok {
		return imp
	}

	name := p.Name()
	for n := 2; r.nameTaken(name, p.Path()); n++ {
		name = fmt.Sprintf("%s%d", p.Name(), n)
	}

	imp := models.Import{Path: p.Path()}
	if name != p.Name() {
		imp.Name = name
	}
	r.imports[p.Path()] = imp
	r.locals[name] = p.Path()
	return imp
}

func (r *Resolver) nameTaken(name, path string) bool {
	if other, ok := r.locals[name]; ok {
		return other != path
	}
	// command artifacts import the runtime as notify
	if name == "notify" && path != notify.ImportPath {
		return true
	}
	return r.pkg.Types != nil && r.pkg.Types.Scope().Lookup(name) != nil
}

// Members returns the fields and methods declared directly on the named
// type typeName, keyed by name
func (r *Resolver) Members(typeName string) map[string]models.SourcePosition {
	members := make(map[string]models.SourcePosition)
	if r.pkg.Types == nil {
		return members
	}

	obj, ok := r.pkg.Types.Scope().Lookup(typeName).(*types.TypeName)
	if !ok {
		return members
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return members
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			members[f.Name()] = r.Position(f)
		}
	}
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		members[m.Name()] = r.Position(m)
	}
	return members
}
