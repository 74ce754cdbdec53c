// Package naming derives the names of generated members and artifacts from
// the names of the declarations they are generated for.
package naming

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
)

// ShimArtifactID is the file name of the injected runtime shim
const ShimArtifactID = "autogen_notify_shim.go"

// PropertyName resolves the generated property name for a backing field.
// The second result is false when no property should be generated: the
// derived name is empty or equals the backing name.
func PropertyName(field string, override string, hasOverride bool) (string, bool, error) {
	if hasOverride {
		if !token.IsIdentifier(override) {
			return "", false, errors.NewValidationError("property name", "a Go identifier", override).
				WithSuggestion("Use an identifier such as Username for the marker argument")
		}
		if override == field {
			return "", false, nil
		}
		return override, true, nil
	}

	name := upperFirst(strings.TrimPrefix(field, "_"))
	if name == "" || name == field {
		return "", false, nil
	}
	return name, true, nil
}

// SetterName returns the setter method name for property
func SetterName(property string) string {
	return "Set" + property
}

// CommandNames returns the memoization field and accessor method names for
// a command handler method
func CommandNames(method string) (field, accessor string) {
	return lowerFirst(method) + "Command", upperFirst(method) + "Command"
}

// ReceiverName returns the receiver identifier used in generated methods
func ReceiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "r"
	}
	return string(unicode.ToLower(r))
}

// CompanionName returns the name of the generated struct holding command slots
func CompanionName(typeName string) string {
	return lowerFirst(typeName) + "Commands"
}

// ArtifactID returns the file name of the artifact generated for typeName
func ArtifactID(typeName string, kind models.ArtifactKind) string {
	if kind == models.ShimArtifact {
		return ShimArtifactID
	}
	return "autogen_" + SnakeCase(typeName) + "_" + kind.String() + ".go"
}

// SnakeCase converts a Go identifier to snake_case, keeping acronyms together
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
