// Package schema validates request documents against an embedded CUE
// schema before decoding.
//
// The codec in internal/wire already rejects structurally broken
// documents; the CUE pass exists for authoring feedback — it reports
// every problem at once with positions, where the codec stops at the
// first. The schema is deliberately open (unknown fields pass) so it is
// never stricter than the codec's forward-compatibility rule.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

// Issue is a single schema violation with its source position.
type Issue struct {
	// Pos is the "file:line:col" location in the validated document,
	// or "" when no position is available.
	Pos string `json:"pos,omitempty"`

	// Message describes the violation.
	Message string `json:"message"`
}

// ValidationError aggregates all schema violations found in one
// document.
type ValidationError struct {
	Issues []Issue
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("schema violation: %s", e.Issues[0].Message)
	}
	return fmt.Sprintf("%d schema violations (first: %s)", len(e.Issues), e.Issues[0].Message)
}

var (
	compileOnce sync.Once
	specSchema  cue.Value
	compileErr  error
)

// testSpecSchema compiles the embedded schema once and returns the
// #TestSpec definition.
func testSpecSchema() (cue.Value, error) {
	compileOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			compileErr = fmt.Errorf("embedded schema is broken: %w", err)
			return
		}
		specSchema = v.LookupPath(cue.ParsePath("#TestSpec"))
		if err := specSchema.Err(); err != nil {
			compileErr = fmt.Errorf("embedded schema is broken: %w", err)
		}
	})
	return specSchema, compileErr
}

// ValidateSpec checks a request document against the schema. The
// filename is used only for issue positions. Returns a
// *ValidationError listing every violation, or nil when the document
// conforms.
func ValidateSpec(filename string, data []byte) error {
	schemaVal, err := testSpecSchema()
	if err != nil {
		return err
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return &ValidationError{Issues: []Issue{{Message: fmt.Sprintf("not valid JSON: %v", err)}}}
	}

	ctx := schemaVal.Context()
	dataVal := ctx.BuildExpr(expr)
	if err := dataVal.Err(); err != nil {
		return &ValidationError{Issues: cueIssues(err)}
	}

	unified := schemaVal.Unify(dataVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Issues: cueIssues(err)}
	}
	return nil
}

// cueIssues flattens a CUE error into positioned issues.
func cueIssues(err error) []Issue {
	var issues []Issue
	for _, e := range cueerrors.Errors(err) {
		issue := Issue{Message: e.Error()}
		if pos := e.Position(); pos.IsValid() {
			issue.Pos = pos.String()
		}
		issues = append(issues, issue)
	}
	if len(issues) == 0 {
		issues = append(issues, Issue{Message: err.Error()})
	}
	return issues
}
