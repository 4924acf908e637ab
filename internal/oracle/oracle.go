// Package oracle defines the layout oracle contract and the reference
// subprocess transport.
//
// The oracle is the external layout engine: a black-box total function
// from (layout, constraints) to a computed tree. The core never
// computes layout itself; it only fixes the contract. Any byte-oriented
// channel carrying one JSON document in and one out satisfies it —
// subprocess stdio is the reference transport, in-process calls and RPC
// are equally valid.
package oracle

import (
	"context"

	"github.com/boxproof/boxproof/internal/spec"
	"github.com/boxproof/boxproof/internal/wire"
)

// Oracle computes layout for a request. Implementations must not
// mutate the request tree, and must return a computed tree that is
// structurally congruent to it.
//
// The call is the single blocking point in the evaluation pipeline;
// callers own the timeout/cancellation policy via ctx. A timeout
// surfaces as an OracleError, not a distinct kind.
type Oracle interface {
	ComputeLayout(ctx context.Context, req *wire.LayoutRequest) (*spec.ComputedNode, error)
}

// Func adapts an in-process layout function to the Oracle interface.
type Func func(ctx context.Context, req *wire.LayoutRequest) (*spec.ComputedNode, error)

// ComputeLayout implements Oracle.
func (f Func) ComputeLayout(ctx context.Context, req *wire.LayoutRequest) (*spec.ComputedNode, error) {
	return f(ctx, req)
}
