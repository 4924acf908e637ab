package oracle

import (
	"errors"
	"fmt"
)

// OracleError represents a failed oracle invocation. Oracle failures
// are fatal to the run: no partial TestResult is ever produced from a
// failed invocation.
type OracleError struct {
	// Stage names where the invocation failed: "spawn", "write",
	// "exit", "decode".
	Stage string

	// Message is a human-readable description.
	Message string

	// Stderr holds the engine's captured stderr, when any.
	Stderr string

	// Err is the underlying error, when any.
	Err error
}

// Error implements the error interface.
func (e *OracleError) Error() string {
	msg := fmt.Sprintf("oracle failure (%s): %s", e.Stage, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s\nengine stderr:\n%s", msg, e.Stderr)
	}
	return msg
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *OracleError) Unwrap() error { return e.Err }

// IsOracleFailure reports whether err is (or wraps) an OracleError.
func IsOracleFailure(err error) bool {
	var oe *OracleError
	return errors.As(err, &oe)
}
