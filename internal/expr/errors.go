package expr

import (
	"errors"
	"fmt"
)

// Code categorizes expression failures. Every code is recovered locally
// by the aggregator: the owning assertion is classified skipped and the
// run continues.
type Code string

const (
	// CodeParse indicates the expression text does not match the grammar.
	CodeParse Code = "PARSE_ERROR"

	// CodeType indicates a kind mismatch at evaluation time, e.g. a
	// float-returning function applied to a number, arithmetic on a node
	// handle, or a top-level expression that is not a comparison.
	CodeType Code = "TYPE_ERROR"

	// CodeEvaluation indicates a runtime failure that is neither a type
	// nor an index problem: division by zero, an unknown function, a
	// wrong argument count, or a fractional child index.
	CodeEvaluation Code = "EVALUATION_ERROR"

	// CodeIndexOutOfRange indicates child(node, i) where i is negative,
	// at least the child count, or the node is a leaf.
	CodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"
)

// Error is a structured expression failure.
type Error struct {
	// Code identifies the failure category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Pos is the byte offset into the expression where the failure was
	// detected. Zero-based; -1 when no position applies.
	Pos int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code Code, pos int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// CodeOf extracts the failure code from an error.
// Returns "" if err is not an expression Error.
func CodeOf(err error) Code {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsParseError reports whether err is a grammar failure.
func IsParseError(err error) bool { return CodeOf(err) == CodeParse }

// IsTypeError reports whether err is a kind mismatch.
func IsTypeError(err error) bool { return CodeOf(err) == CodeType }

// IsIndexOutOfRange reports whether err is a child index failure.
func IsIndexOutOfRange(err error) bool { return CodeOf(err) == CodeIndexOutOfRange }
