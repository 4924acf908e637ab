// Package runner executes a test spec end to end: validation, the
// oracle invocation, per-assertion evaluation, and aggregation into a
// TestResult.
package runner

import (
	"context"

	"github.com/google/uuid"

	"github.com/boxproof/boxproof/internal/expr"
	"github.com/boxproof/boxproof/internal/oracle"
	"github.com/boxproof/boxproof/internal/spec"
	"github.com/boxproof/boxproof/internal/wire"
)

// Outcome classifies a single assertion.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// AssertionResult is the per-assertion detail of a completed run.
type AssertionResult struct {
	// Index is the assertion's position in the spec.
	Index int `json:"index"`

	// Message is the assertion's human-readable label, copied through.
	Message string `json:"message"`

	// Expression is the assertion's expression text, copied through.
	Expression string `json:"expression"`

	// Outcome is the classification.
	Outcome Outcome `json:"outcome"`

	// Detail explains a failed or skipped outcome. Empty for passed.
	Detail string `json:"detail,omitempty"`
}

// Result is a completed run: the wire-level counts plus per-assertion
// diagnostics. RunID is a fresh UUID identifying this run in logs and
// CLI output; it is metadata, never part of the wire result document.
type Result struct {
	RunID      string            `json:"runId"`
	TestResult spec.TestResult   `json:"-"`
	Assertions []AssertionResult `json:"assertions"`
}

// Success reports overall run success: every assertion evaluated
// cleanly and held. A skipped assertion is not silently treated as
// passing.
func (r *Result) Success() bool {
	return r.TestResult.Failed == 0 &&
		r.TestResult.Skipped == 0 &&
		r.TestResult.Passed == len(r.Assertions)
}

// Run executes one test spec against an oracle.
//
// Fatal errors — invalid spec, oracle failure, a computed tree that
// does not mirror the layout tree — abort the run and return a nil
// Result: no partial counts are ever reported. Per-assertion expression
// failures are contained: the assertion is classified skipped and the
// run continues, so one authoring mistake cannot mask the pass/fail
// signal of the rest.
//
// Every assertion is evaluated regardless of prior outcomes; there is
// no cancellation on first failure. A completed run always satisfies
// passed+failed+skipped == len(assertions).
func Run(ctx context.Context, s *spec.TestSpec, o oracle.Oracle) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	computed, err := o.ComputeLayout(ctx, &wire.LayoutRequest{
		Layout:      s.Layout,
		Constraints: s.Constraints,
		Binding:     s.Binding,
	})
	if err != nil {
		return nil, err
	}

	if !computed.CongruentWith(&s.Layout) {
		return nil, &oracle.OracleError{
			Stage:   "decode",
			Message: "computed tree shape does not match the layout tree",
		}
	}

	result := &Result{
		RunID:      uuid.NewString(),
		Assertions: make([]AssertionResult, 0, len(s.Assertions)),
	}

	for i, a := range s.Assertions {
		ar := evaluateAssertion(i, a, computed)
		result.Assertions = append(result.Assertions, ar)

		switch ar.Outcome {
		case OutcomePassed:
			result.TestResult.Passed++
		case OutcomeFailed:
			result.TestResult.Failed++
		case OutcomeSkipped:
			result.TestResult.Skipped++
		}
	}

	return result, nil
}

// evaluateAssertion classifies a single assertion against the computed
// tree. Assertion types other than "layout" are authoring mistakes at
// this layer and classify as skipped, same as expression failures.
func evaluateAssertion(index int, a spec.Assertion, computed *spec.ComputedNode) AssertionResult {
	result := AssertionResult{
		Index:      index,
		Message:    a.Message,
		Expression: a.Expression,
	}

	if a.Type != spec.AssertLayout {
		result.Outcome = OutcomeSkipped
		result.Detail = "unsupported assertion type " + string(a.Type)
		return result
	}

	holds, err := expr.Evaluate(a.Expression, computed)
	if err != nil {
		result.Outcome = OutcomeSkipped
		result.Detail = err.Error()
		return result
	}

	if holds {
		result.Outcome = OutcomePassed
	} else {
		result.Outcome = OutcomeFailed
		result.Detail = "expression evaluated to false"
	}
	return result
}
