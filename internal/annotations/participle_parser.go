package annotations

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
)

// directivePrefix matches the //namespace: head of a directive. Go directives
// are written without a space after the slashes, so neither are ours.
var directivePrefix = regexp.MustCompile(`^//([\p{L}_][\p{L}\p{N}_]*):`)

// directiveAST is the grammar of the text after the leading slashes
type directiveAST struct {
	Namespace string    `parser:"@Ident ':'"`
	Name      string    `parser:"@Ident"`
	Args      []*argAST `parser:"@@*"`
}

type argAST struct {
	String *string `parser:"  @String"`
	Number *string `parser:"| @Number"`
	Ident  *string `parser:"| @Ident"`
}

func (a *argAST) toArg() Arg {
	switch {
	case a.String != nil:
		return Arg{Kind: StringArg, Value: *a.String}
	case a.Number != nil:
		return Arg{Kind: NumberArg, Value: *a.Number}
	default:
		return Arg{Kind: IdentArg, Value: *a.Ident}
	}
}

// DirectiveParser parses marker directives using alecthomas/participle
type DirectiveParser struct {
	parser   *participle.Parser[directiveAST]
	registry Registry
}

// NewDirectiveParser creates a parser resolving markers against registry
func NewDirectiveParser(registry Registry) *DirectiveParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Trailing", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(\\"|[^"])*"|` + "`[^`]*`"},
		{Name: "Number", Pattern: `[-+]?[0-9]+(\.[0-9]+)?`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Punct", Pattern: `[^\s]`},
	})

	parser := participle.MustBuild[directiveAST](
		participle.Lexer(lex),
		participle.Elide("Whitespace", "Trailing"),
		participle.Unquote("String"),
	)

	return &DirectiveParser{
		parser:   parser,
		registry: registry,
	}
}

// Parse parses a single comment line. It returns nil without error when the
// comment is not a directive in one of the registry's namespaces.
func (p *DirectiveParser) Parse(comment string, pos models.SourcePosition) (*Directive, error) {
	comment = strings.TrimRight(comment, " \t\r")

	m := directivePrefix.FindStringSubmatch(comment)
	if m == nil || !p.registry.IsMarkerNamespace(m[1]) {
		return nil, nil
	}

	content := strings.TrimPrefix(comment, "//")
	ast, err := p.parser.ParseString(pos.File, content)
	if err != nil {
		return nil, p.syntaxError(comment, pos, err.Error())
	}

	// the name must follow the colon directly
	if !strings.HasPrefix(content, QualifiedName(ast.Namespace, ast.Name)) {
		return nil, p.syntaxError(comment, pos, "marker name must follow the namespace without spaces")
	}

	directive := &Directive{
		Namespace: ast.Namespace,
		Name:      ast.Name,
		Location:  pos,
		Raw:       comment,
	}
	for _, arg := range ast.Args {
		directive.Args = append(directive.Args, arg.toArg())
	}
	return directive, nil
}

// ParseMarker parses a comment and resolves it to a registered marker.
// A nil marker with nil error means the comment is not ours.
func (p *DirectiveParser) ParseMarker(comment string, pos models.SourcePosition) (*Marker, error) {
	directive, err := p.Parse(comment, pos)
	if err != nil || directive == nil {
		return nil, err
	}

	schema, ok := p.registry.Resolve(directive.Namespace, directive.Name)
	if !ok {
		return nil, errors.NewValidationError("marker", p.knownMarkers(directive.Namespace), directive.QualifiedName()).
			WithLocation(toLocation(pos))
	}
	return &Marker{Schema: schema, Directive: directive}, nil
}

func (p *DirectiveParser) knownMarkers(namespace string) string {
	var names []string
	for _, schema := range p.registry.Schemas() {
		names = append(names, QualifiedName(namespace, schema.Name))
	}
	return "one of " + strings.Join(names, ", ")
}

func (p *DirectiveParser) syntaxError(comment string, pos models.SourcePosition, reason string) error {
	err := errors.NewSyntaxError(fmt.Sprintf("malformed directive %q: %s", comment, reason))
	err.WithLocation(toLocation(pos))
	return err
}

func toLocation(pos models.SourcePosition) errors.SourceLocation {
	return errors.SourceLocation{File: pos.File, Line: pos.Line, Column: pos.Column}
}
