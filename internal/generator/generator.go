// Package generator runs generation passes: scan a package for markers,
// resolve the generated names and emit one artifact per marked type.
package generator

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/qian-o/CodeGenerator/internal/annotations"
	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/grouper"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/naming"
	"github.com/qian-o/CodeGenerator/internal/registry"
	"github.com/qian-o/CodeGenerator/internal/scanner"
	"github.com/qian-o/CodeGenerator/internal/templates"
)

// Options configures a Generator
type Options struct {
	Runtime  models.RuntimeMode
	Markers  annotations.Registry // defaults to the built-in markers
	Reporter Reporter
}

// Generator implements the CodeGenerator interface
type Generator struct {
	runtime  models.RuntimeMode
	scanner  *scanner.Scanner
	reporter Reporter
}

// NewGenerator creates a new code generator instance
func NewGenerator(opts Options) *Generator {
	if opts.Runtime == "" {
		opts.Runtime = models.RuntimeShim
	}
	if opts.Markers == nil {
		opts.Markers = annotations.DefaultRegistry()
	}
	if opts.Reporter == nil {
		opts.Reporter = NopReporter{}
	}

	return &Generator{
		runtime:  opts.Runtime,
		scanner:  scanner.New(opts.Markers),
		reporter: opts.Reporter,
	}
}

// pass holds the state of one Run. Nothing survives between passes.
type pass struct {
	id        string
	pkg       *scanner.Package
	resolver  *scanner.Resolver
	artifacts *registry.ArtifactRegistry
	errs      *errors.MultipleErrors
}

// Run generates the artifacts of pkg. Any validation failure, conflict or
// duplicate artifact aborts the pass without an artifact set.
func (g *Generator) Run(ctx context.Context, pkg *scanner.Package) (*models.ArtifactSet, error) {
	p := &pass{
		id:        uuid.NewString(),
		pkg:       pkg,
		resolver:  scanner.NewResolver(pkg),
		artifacts: registry.NewArtifactRegistry(),
		errs:      errors.NewMultipleErrors(),
	}

	if g.runtime == models.RuntimeShim {
		if err := annotations.InjectShim(p.artifacts, pkg.Name, pkg.Path); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := g.scanner.Scan(pkg)
	for _, d := range result.Diagnostics {
		g.reporter.Diagnostic(p.id, d)
	}

	fieldGroups := grouper.Fields(result.Candidates.Fields)
	methodGroups := grouper.Methods(result.Candidates.Methods)

	props := make([][]templates.Property, len(fieldGroups))
	for i, group := range fieldGroups {
		props[i] = g.resolveProperties(p, group)
	}
	cmds := make([][]templates.Command, len(methodGroups))
	for i, group := range methodGroups {
		cmds[i] = g.resolveCommands(p, group)
	}
	g.checkConflicts(p, fieldGroups, props, methodGroups, cmds)
	// the shim is only written for packages with markers
	if result.Candidates.Len() > 0 {
		if err := g.checkShimNames(p); err != nil {
			return nil, err
		}
	}

	if err := p.errs.ErrOrNil(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emitter := templates.NewEmitter(pkg.Name, g.runtime)

	for i, group := range fieldGroups {
		artifact, ok, err := emitter.EmitProperties(group.Type, props[i])
		if err != nil {
			return nil, err
		}
		if ok {
			if err := p.artifacts.Register(artifact); err != nil {
				return nil, err
			}
		}
	}

	for i, group := range methodGroups {
		artifact, ok, err := emitter.EmitCommands(group.Type, cmds[i])
		if err != nil {
			return nil, err
		}
		if ok {
			if err := p.artifacts.Register(artifact); err != nil {
				return nil, err
			}
		}
	}

	return &models.ArtifactSet{
		PassID:      p.id,
		PackageName: pkg.Name,
		PackagePath: pkg.Path,
		Dir:         pkg.Dir,
		Artifacts:   p.artifacts.Artifacts(),
		Candidates:  result.Candidates.Len(),
	}, nil
}

func (g *Generator) resolveProperties(p *pass, group grouper.Group[models.FieldCandidate]) []templates.Property {
	var props []templates.Property
	for _, f := range group.Items {
		name, ok, err := naming.PropertyName(f.Name, f.Override, f.HasOverride)
		if err != nil {
			var verr *errors.ValidationError
			if stderrors.As(err, &verr) {
				verr.WithLocation(location(f.Pos))
				p.errs.Add(verr)
			}
			continue
		}
		if !ok {
			g.reporter.Debug("%s: no property generated for %s.%s, the name would not change", f.Pos, group.Type.Name, f.Name)
			continue
		}

		props = append(props, templates.Property{
			Name:    name,
			Setter:  naming.SetterName(name),
			Field:   f.Name,
			Type:    f.Type,
			Imports: f.Imports,
			Pos:     f.Pos,
		})
	}
	return props
}

func (g *Generator) resolveCommands(p *pass, group grouper.Group[models.MethodCandidate]) []templates.Command {
	var cmds []templates.Command
	for _, m := range group.Items {
		if err := validateHandler(group.Type, m); err != nil {
			p.errs.Add(err)
			continue
		}

		field, accessor := naming.CommandNames(m.Name)
		cmd := templates.Command{
			Method:   m.Name,
			Field:    field,
			Accessor: accessor,
			Imports:  m.Imports(),
			Pos:      m.Pos,
		}
		if len(m.Params) == 1 {
			cmd.HasParam = true
			cmd.ParamType = m.Params[0].Type
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// validateHandler rejects methods a relay command cannot invoke
func validateHandler(t models.TypeDescriptor, m models.MethodCandidate) *errors.ValidationError {
	var actual string
	switch {
	case m.Variadic:
		actual = "a variadic parameter"
	case len(m.Params) > 1:
		actual = "more than one parameter"
	case m.Results > 0:
		actual = "result values"
	default:
		return nil
	}

	err := errors.NewValidationError("command handler "+t.Name+"."+m.Name, "at most one parameter and no results", actual).
		WithLocation(location(m.Pos)).
		WithSuggestion("Wrap the method in a handler taking a single struct parameter")
	return err
}

func location(pos models.SourcePosition) errors.SourceLocation {
	return errors.SourceLocation{File: pos.File, Line: pos.Line, Column: pos.Column}
}
