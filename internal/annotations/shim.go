package annotations

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"strings"
	"sync"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/naming"
	"github.com/qian-o/CodeGenerator/pkg/notify"
)

// ArtifactSink receives artifacts produced during a pass
type ArtifactSink interface {
	Register(artifact models.Artifact) error
}

// ShimSource returns the runtime support source rewritten into package pkgName
func ShimSource(pkgName string) (string, error) {
	if !token.IsIdentifier(pkgName) {
		return "", errors.NewValidationError("package name", "a Go identifier", pkgName)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "notify.go", notify.Source, parser.PackageClauseOnly)
	if err != nil {
		return "", errors.WrapParseError("runtime source", err)
	}

	start := fset.Position(file.Package).Offset
	end := fset.Position(file.Name.End()).Offset

	var b strings.Builder
	b.WriteString(models.GeneratedHeader)
	b.WriteString("\n\n")
	b.WriteString("// Runtime support for the //notify:observable and //notify:command markers.\n\n")
	b.WriteString(notify.Source[:start])
	b.WriteString("package ")
	b.WriteString(pkgName)
	b.WriteString(notify.Source[end:])
	return b.String(), nil
}

// InjectShim registers the shim artifact for the package into sink.
// Injecting twice in one pass registers an identical payload and is a no-op.
func InjectShim(sink ArtifactSink, pkgName, pkgPath string) error {
	source, err := ShimSource(pkgName)
	if err != nil {
		return err
	}

	return sink.Register(models.Artifact{
		ID:      naming.ShimArtifactID,
		Kind:    models.ShimArtifact,
		Type:    models.TypeDescriptor{Namespace: pkgPath},
		Content: source,
	})
}

// ShimDeclarations returns the sorted package-level names the shim declares
// in the target package
var ShimDeclarations = sync.OnceValues(func() ([]string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), "notify.go", notify.Source, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.WrapParseError("runtime source", err)
	}

	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				names = append(names, d.Name.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						if n.Name != "_" {
							names = append(names, n.Name)
						}
					}
				}
			}
		}
	}
	sort.Strings(names)
	return names, nil
})
