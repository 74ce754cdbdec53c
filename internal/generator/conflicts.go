package generator

import (
	"github.com/qian-o/CodeGenerator/internal/annotations"
	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/grouper"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/naming"
	"github.com/qian-o/CodeGenerator/internal/templates"
)

// memberSet tracks the members generated for one type
type memberSet struct {
	typeName    string
	handWritten map[string]models.SourcePosition
	generated   map[string]models.SourcePosition
}

// claim records a generated member and reports a conflict when the name is
// already generated or written by hand
func (m *memberSet) claim(p *pass, name string, pos models.SourcePosition) {
	if prev, ok := m.generated[name]; ok {
		p.errs.Add(errors.NewConflictError(m.typeName, name, location(prev), location(pos)))
		return
	}
	m.generated[name] = pos

	if prev, ok := m.handWritten[name]; ok {
		err := errors.NewConflictError(m.typeName, name, location(pos), location(prev))
		err.WithSuggestion("Rename the hand-written member or pass an explicit name to the marker")
		p.errs.Add(err)
	}
}

// checkConflicts verifies that the members generated for each type are
// distinct from each other and from the type's hand-written members
func (g *Generator) checkConflicts(
	p *pass,
	fieldGroups []grouper.Group[models.FieldCandidate], props [][]templates.Property,
	methodGroups []grouper.Group[models.MethodCandidate], cmds [][]templates.Command,
) {
	sets := make(map[models.TypeDescriptor]*memberSet)
	set := func(t models.TypeDescriptor) *memberSet {
		s, ok := sets[t]
		if !ok {
			s = &memberSet{
				typeName:    t.Name,
				handWritten: p.resolver.Members(t.Name),
				generated:   make(map[string]models.SourcePosition),
			}
			sets[t] = s
		}
		return s
	}

	for i, group := range fieldGroups {
		s := set(group.Type)
		for _, prop := range props[i] {
			s.claim(p, prop.Name, prop.Pos)
			s.claim(p, prop.Setter, prop.Pos)
		}
	}

	for i, group := range methodGroups {
		if len(cmds[i]) == 0 {
			continue
		}
		s := set(group.Type)
		for _, cmd := range cmds[i] {
			s.claim(p, cmd.Accessor, cmd.Pos)
			s.claim(p, cmd.Field, cmd.Pos)
		}

		// the companion struct is declared at package scope
		companion := naming.CompanionName(group.Type.Name)
		if p.pkg.Types != nil {
			if obj := p.pkg.Types.Scope().Lookup(companion); obj != nil {
				p.errs.Add(errors.NewConflictError(group.Type.Name, companion,
					location(cmds[i][0].Pos), location(p.resolver.Position(obj))))
			}
		}
	}
}

// checkShimNames reports hand-written package-level declarations that the
// injected shim would declare a second time
func (g *Generator) checkShimNames(p *pass) error {
	if g.runtime != models.RuntimeShim || p.pkg.Types == nil {
		return nil
	}

	names, err := annotations.ShimDeclarations()
	if err != nil {
		return err
	}

	scope := p.pkg.Types.Scope()
	for _, name := range names {
		obj := scope.Lookup(name)
		if obj == nil {
			continue
		}
		err := errors.NewConflictError(p.pkg.Name, name,
			location(p.resolver.Position(obj)), errors.SourceLocation{File: naming.ShimArtifactID})
		err.WithSuggestion("Rename the declaration or generate with --runtime import")
		p.errs.Add(err)
	}
	return nil
}
