package scanner

import (
	"context"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/utils"
)

// Package is one type-checked package ready to be scanned. Generated
// artifacts and tests are not part of it.
type Package struct {
	Name  string // package name
	Path  string // import path
	Dir   string
	Fset  *token.FileSet
	Files []*ast.File // sorted by file name
	Types *types.Package
	Info  *types.Info

	// TypeErrors are tolerated: hand-written code may refer to members
	// that only exist once the artifacts are generated.
	TypeErrors []error
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports |
	packages.NeedDeps | packages.NeedTypes

// LoadDir loads the package in dir
func LoadDir(ctx context.Context, dir string) (*Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    loadMode,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, errors.WrapFileSystemError("load package", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, errors.FileSystemError("load package", dir, fmt.Sprintf("expected one package, found %d", len(pkgs)))
	}

	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		if e.Kind == packages.ListError {
			return nil, errors.WrapFileSystemError("load package", dir, e)
		}
	}

	var names []string
	for _, file := range pkg.GoFiles {
		if utils.IsSourceFile(filepath.Base(file)) {
			names = append(names, file)
		}
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	files := make([]*ast.File, 0, len(names))
	for _, name := range names {
		file, err := parser.ParseFile(fset, name, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.WrapParseError(name, err)
		}
		files = append(files, file)
	}

	imp := importerFunc(func(path string) (*types.Package, error) {
		if path == "unsafe" {
			return types.Unsafe, nil
		}
		if dep, ok := pkg.Imports[path]; ok && dep.Types != nil {
			return dep.Types, nil
		}
		return nil, fmt.Errorf("package %s is not imported by %s", path, pkg.PkgPath)
	})

	return check(pkg.PkgPath, dir, fset, files, imp)
}

// ParseSource builds a package from in-memory sources keyed by file name.
// Imports are resolved from the standard library.
func ParseSource(pkgPath string, sources map[string]string) (*Package, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	var files []*ast.File
	for _, name := range names {
		if !utils.IsSourceFile(name) {
			continue
		}
		file, err := parser.ParseFile(fset, name, sources[name], parser.ParseComments)
		if err != nil {
			return nil, errors.WrapParseError(name, err)
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, errors.NewSyntaxError("no Go source files")
	}

	return check(pkgPath, "", fset, files, importer.ForCompiler(fset, "source", nil))
}

func check(pkgPath, dir string, fset *token.FileSet, files []*ast.File, imp types.Importer) (*Package, error) {
	name := ""
	for _, file := range files {
		if name == "" {
			name = file.Name.Name
		} else if file.Name.Name != name {
			return nil, errors.NewSyntaxError(fmt.Sprintf("multiple packages found: %s and %s", name, file.Name.Name)).
				WithContext("path", pkgPath)
		}
	}

	p := &Package{
		Name:  name,
		Path:  pkgPath,
		Dir:   dir,
		Fset:  fset,
		Files: files,
		Info: &types.Info{
			Defs:  make(map[*ast.Ident]types.Object),
			Types: make(map[ast.Expr]types.TypeAndValue),
		},
	}

	conf := types.Config{
		Importer: imp,
		Error: func(err error) {
			p.TypeErrors = append(p.TypeErrors, err)
		},
	}
	p.Types, _ = conf.Check(pkgPath, fset, files, p.Info)
	return p, nil
}

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }
