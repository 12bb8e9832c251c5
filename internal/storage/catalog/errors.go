package catalog

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no live framework has the requested ID.
	ErrNotFound = errors.New("framework not found")
	// ErrConflict is returned when a write would create a second live
	// framework with the same name (case-insensitive) and version.
	ErrConflict = errors.New("framework already exists")
)

// FieldViolation describes one field that failed a constraint.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "invalid framework: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// orNil returns e when it holds violations.
func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
