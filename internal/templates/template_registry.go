package templates

import (
	"bytes"
	"text/template"

	"github.com/qian-o/CodeGenerator/internal/errors"
)

const (
	PropertiesTemplate = "properties"
	CommandsTemplate   = "commands"
)

// TemplateRegistry holds the parsed artifact templates. Parsed templates
// are safe for concurrent execution.
type TemplateRegistry struct {
	templates map[string]*template.Template
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]*template.Template),
	}

	registry.register(PropertiesTemplate, propertiesTemplate)
	registry.register(CommandsTemplate, commandsTemplate)

	return registry
}

func (tr *TemplateRegistry) register(name, text string) {
	tr.templates[name] = template.Must(template.New(name).Parse(text))
}

// Execute renders the named template with data
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	tmpl, ok := tr.templates[name]
	if !ok {
		return "", errors.NewGenerationError("template not found: " + name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}
	return buf.String(), nil
}

const propertiesTemplate = `{{.Header}}

package {{.Package}}
{{if .Imports}}
{{.Imports}}{{end}}
{{- range .Properties}}

// {{.Name}} returns {{.Field}}.
func ({{$.Recv}} *{{$.Type}}) {{.Name}}() {{.Type}} {
	return {{$.Recv}}.{{.Field}}
}

// {{.Setter}} assigns {{.Field}} and raises PropertyChanged for {{.Name}}.
func ({{$.Recv}} *{{$.Type}}) {{.Setter}}(value {{.Type}}) {
	{{$.Recv}}.{{.Field}} = value
	{{$.Recv}}.RaisePropertyChanged({{$.Recv}}, "{{.Name}}")
}
{{- end}}
`

const commandsTemplate = `{{.Header}}

package {{.Package}}
{{if .Imports}}
{{.Imports}}{{end}}

// {{.Companion}} holds the commands of {{.Type}}. {{.Type}} embeds it.
type {{.Companion}} struct {
{{- range .Commands}}
	{{.Field}} {{$.CommandType}}
{{- end}}
}
{{- range .Commands}}

// {{.Accessor}} returns the command bound to {{.Method}}, creating it on first use.
func ({{$.Recv}} *{{$.Type}}) {{.Accessor}}() {{$.CommandType}} {
	if {{$.Recv}}.{{.Field}} == nil {
		{{$.Recv}}.{{.Field}} = {{$.Qualifier}}NewRelayCommand{{if .HasParam}}Of[{{.ParamType}}]{{end}}({{$.Recv}}.{{.Method}})
	}
	return {{$.Recv}}.{{.Field}}
}
{{- end}}
`
