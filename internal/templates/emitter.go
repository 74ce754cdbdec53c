// Package templates renders the generated property and command artifacts.
package templates

import (
	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/naming"
	"github.com/qian-o/CodeGenerator/internal/utils"
	"github.com/qian-o/CodeGenerator/pkg/notify"
)

// Property is one resolved accessor pair
type Property struct {
	Name    string // getter name
	Setter  string
	Field   string // backing field
	Type    string
	Imports []models.Import
	Pos     models.SourcePosition // declaration the pair is generated for
}

// Command is one resolved command accessor
type Command struct {
	Method    string
	Field     string // slot in the companion struct
	Accessor  string
	ParamType string
	HasParam  bool
	Imports   []models.Import
	Pos       models.SourcePosition
}

// Emitter renders artifacts for one package
type Emitter struct {
	registry    *TemplateRegistry
	packageName string
	runtime     models.RuntimeMode
}

// NewEmitter creates an emitter for package packageName
func NewEmitter(packageName string, runtime models.RuntimeMode) *Emitter {
	return &Emitter{
		registry:    NewTemplateRegistry(),
		packageName: packageName,
		runtime:     runtime,
	}
}

type propertiesData struct {
	Header     string
	Package    string
	Imports    string
	Type       string
	Recv       string
	Properties []Property
}

type commandsData struct {
	Header      string
	Package     string
	Imports     string
	Type        string
	Recv        string
	Companion   string
	Qualifier   string
	CommandType string
	Commands    []Command
}

// EmitProperties renders the accessor pairs of one type. ok is false when
// there is nothing to emit.
func (e *Emitter) EmitProperties(t models.TypeDescriptor, props []Property) (artifact models.Artifact, ok bool, err error) {
	if len(props) == 0 {
		return models.Artifact{}, false, nil
	}

	im := NewImportManager()
	var members []string
	for _, p := range props {
		im.AddTypeImports(p.Imports...)
		members = append(members, p.Name, p.Setter)
	}

	data := propertiesData{
		Header:     models.GeneratedHeader,
		Package:    e.packageName,
		Imports:    im.GenerateImports(),
		Type:       t.Name,
		Recv:       naming.ReceiverName(t.Name),
		Properties: props,
	}

	id := naming.ArtifactID(t.Name, models.PropertyArtifact)
	content, err := e.render(id, PropertiesTemplate, data)
	if err != nil {
		return models.Artifact{}, false, err
	}

	return models.Artifact{
		ID:      id,
		Kind:    models.PropertyArtifact,
		Type:    t,
		Members: members,
		Content: content,
	}, true, nil
}

// EmitCommands renders the companion struct and command accessors of one
// type. ok is false when there is nothing to emit.
func (e *Emitter) EmitCommands(t models.TypeDescriptor, cmds []Command) (artifact models.Artifact, ok bool, err error) {
	if len(cmds) == 0 {
		return models.Artifact{}, false, nil
	}

	im := NewImportManager()
	qualifier := ""
	if e.runtime == models.RuntimeImport {
		im.AddImport(notify.ImportPath)
		qualifier = "notify."
	}

	companion := naming.CompanionName(t.Name)
	members := []string{companion}
	for _, c := range cmds {
		im.AddTypeImports(c.Imports...)
		members = append(members, c.Accessor)
	}

	data := commandsData{
		Header:      models.GeneratedHeader,
		Package:     e.packageName,
		Imports:     im.GenerateImports(),
		Type:        t.Name,
		Recv:        naming.ReceiverName(t.Name),
		Companion:   companion,
		Qualifier:   qualifier,
		CommandType: qualifier + "Command",
		Commands:    cmds,
	}

	id := naming.ArtifactID(t.Name, models.CommandArtifact)
	content, err := e.render(id, CommandsTemplate, data)
	if err != nil {
		return models.Artifact{}, false, err
	}

	return models.Artifact{
		ID:      id,
		Kind:    models.CommandArtifact,
		Type:    t,
		Members: members,
		Content: content,
	}, true, nil
}

func (e *Emitter) render(id, name string, data interface{}) (string, error) {
	source, err := e.registry.Execute(name, data)
	if err != nil {
		return "", err
	}

	formatted, err := utils.FormatGoCodeString(id, source)
	if err != nil {
		return "", errors.WrapGenerateError(name, id, err)
	}
	return formatted, nil
}
