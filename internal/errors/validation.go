package errors

import (
	"fmt"
	"strings"
)

// SyntaxError reports source that could not be parsed
type SyntaxError struct {
	*BaseError
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{BaseError: New(SyntaxErrorCode, message)}
}

// ValidationError represents a validation error with detailed context
type ValidationError struct {
	*BaseError
	Field    string // declaration or parameter that failed validation
	Expected string // what was expected
	Actual   string // what was provided
}

// NewValidationError creates a new validation error
func NewValidationError(field, expected, actual string) *ValidationError {
	message := fmt.Sprintf("invalid %s: expected %s, got %s", field, expected, actual)

	return &ValidationError{
		BaseError: New(ValidationErrorCode, message),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}

// WithLocation adds location information to the error
func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// RegistrationError is returned when a registry rejects an entry
type RegistrationError struct {
	*BaseError
	ComponentType string
	Name          string
}

// NewRegistrationError creates a new registration error
func NewRegistrationError(componentType, name, reason string) *RegistrationError {
	return &RegistrationError{
		BaseError:     New(RegistrationErrorCode, fmt.Sprintf("failed to register %s '%s': %s", componentType, name, reason)),
		ComponentType: componentType,
		Name:          name,
	}
}

// ConflictError reports two declarations that generate the same member of one type
type ConflictError struct {
	*BaseError
	TypeName  string
	Member    string
	Locations []SourceLocation
}

// NewConflictError creates a conflict error for member on typeName
func NewConflictError(typeName, member string, locations ...SourceLocation) *ConflictError {
	var where []string
	for _, loc := range locations {
		where = append(where, loc.String())
	}
	message := fmt.Sprintf("generated member %s.%s conflicts with another declaration", typeName, member)
	if len(where) > 0 {
		message = fmt.Sprintf("%s (%s)", message, strings.Join(where, ", "))
	}

	err := &ConflictError{
		BaseError: New(ConflictErrorCode, message),
		TypeName:  typeName,
		Member:    member,
		Locations: locations,
	}
	if len(locations) > 0 {
		err.BaseError.WithLocation(locations[0])
	}
	return err
}

// DuplicateArtifactError is returned when one pass registers two different
// payloads under the same artifact id
type DuplicateArtifactError struct {
	*BaseError
	ArtifactID string
}

// NewDuplicateArtifactError creates a duplicate artifact error for id
func NewDuplicateArtifactError(id string) *DuplicateArtifactError {
	return &DuplicateArtifactError{
		BaseError: New(DuplicateArtifactErrorCode,
			fmt.Sprintf("artifact '%s' was registered twice with different content", id)).
			WithSuggestion("Rename one of the types whose names map to the same generated file"),
		ArtifactID: id,
	}
}
