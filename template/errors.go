package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for substitution operations.
var (
	// ErrUnterminated is returned when an opening {{ has no closing }}
	// before the end of content.
	ErrUnterminated = errors.New("unterminated placeholder")

	// ErrUnknownPlaceholder is returned when a placeholder name has no
	// matching argument.
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
)

// UnterminatedError reports an opening delimiter that was never closed.
// Offset is the byte position of the {{ within the template content.
type UnterminatedError struct {
	Offset int
}

// Error implements the error interface.
func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated placeholder at offset %d", e.Offset)
}

// Unwrap returns ErrUnterminated for errors.Is support.
func (e *UnterminatedError) Unwrap() error {
	return ErrUnterminated
}

// UnknownPlaceholderError reports a placeholder whose name matches no
// supplied argument. Offset is the byte position of the placeholder's {{
// within the template content.
type UnknownPlaceholderError struct {
	Name   string
	Offset int
}

// Error implements the error interface.
func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder %q at offset %d", e.Name, e.Offset)
}

// Unwrap returns ErrUnknownPlaceholder for errors.Is support.
func (e *UnknownPlaceholderError) Unwrap() error {
	return ErrUnknownPlaceholder
}
