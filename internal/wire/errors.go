package wire

import (
	"errors"
	"fmt"
)

// MalformedDocumentError is returned when a wire document cannot be
// decoded: required fields missing, wrong types, or not a JSON object.
// This indicates a protocol or version mismatch between harness and
// oracle and is fatal to the run.
type MalformedDocumentError struct {
	// Doc names the document kind ("spec", "result", "computed",
	// "layoutRequest").
	Doc string

	// Field is the offending field path in document notation, or ""
	// when the document as a whole is unreadable.
	Field string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *MalformedDocumentError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed %s document: %s: %s", e.Doc, e.Field, e.Message)
	}
	return fmt.Sprintf("malformed %s document: %s", e.Doc, e.Message)
}

// IsMalformedDocument reports whether err is (or wraps) a
// MalformedDocumentError.
func IsMalformedDocument(err error) bool {
	var mde *MalformedDocumentError
	return errors.As(err, &mde)
}

func malformed(doc, field, format string, args ...any) *MalformedDocumentError {
	return &MalformedDocumentError{Doc: doc, Field: field, Message: fmt.Sprintf(format, args...)}
}
