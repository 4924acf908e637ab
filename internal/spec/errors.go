package spec

import (
	"errors"
	"fmt"
)

// InvalidSpecError is returned when a TestSpec fails local validation.
// This is a caller bug: the spec never reaches the oracle and the run
// is never retried.
type InvalidSpecError struct {
	// Field names the offending field, in document notation
	// (e.g. "constraints.maxWidth", "layout.children[2].style.height").
	Field string

	// Message describes the violation.
	Message string
}

// Error implements the error interface.
func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid spec: %s: %s", e.Field, e.Message)
}

// IsInvalidSpec reports whether err is (or wraps) an InvalidSpecError.
func IsInvalidSpec(err error) bool {
	var ise *InvalidSpecError
	return errors.As(err, &ise)
}
