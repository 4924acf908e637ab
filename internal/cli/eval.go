package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/boxproof/boxproof/internal/runner"
	"github.com/boxproof/boxproof/internal/wire"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Engine     string
	EngineArgs []string
	Timeout    time.Duration
}

// NewEvalCommand creates the eval command: the reference stdio
// transport. One spec document in on stdin, one result document out on
// stdout.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate one spec document from stdin",
		Long: `Evaluate a spec document from stdin and write the result to stdout.

This is the language-agnostic interface: any language that can spawn a
process and read/write JSON can drive it. The input is a single test
spec document; the output is a single result document with the
passed/failed/skipped counts.

The exit code reflects the invocation, not the assertions: a completed
run exits 0 even when assertions failed — assertion outcomes are data.
A fatal error (invalid spec, engine failure, malformed document) exits
non-zero and produces no result document.

Examples:
  boxproof eval --engine ./layoutd < test.json
  cat test.json | boxproof eval --engine ./layoutd`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Engine == "" {
				return NewExitError(ExitCommandError, "--engine is required")
			}
			return runEval(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Engine, "engine", "", "layout engine binary to invoke as the oracle")
	cmd.Flags().StringArrayVar(&opts.EngineArgs, "engine-arg", nil, "extra argument for the engine binary (repeatable)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "engine timeout")

	return cmd
}

func runEval(opts *EvalOptions, cmd *cobra.Command) error {
	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("failed to read stdin: %v", err))
	}

	s, err := wire.DecodeSpec(input)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to decode spec document", err)
	}

	ctx := cmd.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	o := newOracle(&RunOptions{
		RootOptions: opts.RootOptions,
		Engine:      opts.Engine,
		EngineArgs:  opts.EngineArgs,
	})

	result, err := runner.Run(ctx, s, o)
	if err != nil {
		// Fatal: no partial result document is produced.
		return WrapExitError(ExitFailure, "run aborted", err)
	}

	out, err := wire.EncodeResult(result.TestResult)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to encode result document", err)
	}

	w := cmd.OutOrStdout()
	if _, err := w.Write(append(out, '\n')); err != nil {
		return WrapExitError(ExitFailure, "failed to write result document", err)
	}
	return nil
}
