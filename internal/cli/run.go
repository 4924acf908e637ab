package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/boxproof/boxproof/internal/oracle"
	"github.com/boxproof/boxproof/internal/runner"
	"github.com/boxproof/boxproof/internal/spec"
	"github.com/boxproof/boxproof/internal/wire"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Engine     string        // engine binary invoked as the oracle
	EngineArgs []string      // extra arguments for the engine binary
	Timeout    time.Duration // per-invocation oracle timeout
}

// FileResult holds the outcome of running a single spec file.
type FileResult struct {
	File       string                   `json:"file"`
	RunID      string                   `json:"run_id,omitempty"`
	Passed     int                      `json:"passed"`
	Failed     int                      `json:"failed"`
	Skipped    int                      `json:"skipped"`
	Success    bool                     `json:"success"`
	Error      string                   `json:"error,omitempty"`
	Assertions []runner.AssertionResult `json:"assertions,omitempty"`
}

// RunSummary holds the overall run result across files.
type RunSummary struct {
	Files  []FileResult `json:"files"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// newOracle builds the oracle for a run. Overridable in tests to swap
// the subprocess transport for an in-process fake.
var newOracle = func(opts *RunOptions) oracle.Oracle {
	return oracle.NewSubprocess(opts.Engine, opts.EngineArgs...)
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <spec-file>...",
		Short: "Run spec files against a layout engine",
		Long: `Run test spec files against a layout engine binary.

For each file, the layout tree and constraints are handed to the engine
over stdin/stdout, the assertions are evaluated against the computed
geometry, and the outcome is reported. A run succeeds only when every
assertion passed: a skipped assertion (authoring mistake) counts as a
failure of the run, never as a silent pass.

Exit codes:
  0 - All runs succeeded
  1 - One or more runs failed (failed/skipped assertions or fatal error)
  2 - Command error (missing engine, unreadable file, etc.)

Examples:
  boxproof run tests/flexbox.json --engine ./layoutd
  boxproof run tests/*.yaml --engine ./layoutd --engine-arg compute
  boxproof run tests/flexbox.json --engine ./layoutd --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Engine == "" {
				return NewExitError(ExitCommandError, "--engine is required")
			}
			return runSpecs(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Engine, "engine", "", "layout engine binary to invoke as the oracle")
	cmd.Flags().StringArrayVar(&opts.EngineArgs, "engine-arg", nil, "extra argument for the engine binary (repeatable)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-invocation engine timeout")

	return cmd
}

func runSpecs(opts *RunOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	o := newOracle(opts)

	summary := RunSummary{
		Files: make([]FileResult, 0, len(files)),
		Total: len(files),
	}

	for _, file := range files {
		fileResult := runSpecFile(cmd.Context(), opts, o, file, formatter)
		summary.Files = append(summary.Files, fileResult)
		if fileResult.Success {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintf(formatter.Writer, "Run Summary: %d passed, %d failed, %d total\n",
			summary.Passed, summary.Failed, summary.Total)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d spec file(s) failed", summary.Failed))
	}
	if opts.Format != "json" {
		fmt.Fprintln(formatter.Writer, "✓ All specs passed")
	}
	return nil
}

// runSpecFile loads and runs a single spec file.
func runSpecFile(ctx context.Context, opts *RunOptions, o oracle.Oracle, file string, f *OutputFormatter) FileResult {
	fileResult := FileResult{File: file}

	s, _, err := wire.ReadSpecFile(file)
	if err != nil {
		fileResult.Error = err.Error()
		printFileFailure(opts, f, file, err.Error())
		return fileResult
	}

	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	result, err := runner.Run(runCtx, s, o)
	if err != nil {
		fileResult.Error = fmt.Sprintf("[%s] %v", errorCode(err), err)
		printFileFailure(opts, f, file, fileResult.Error)
		return fileResult
	}

	fileResult.RunID = result.RunID
	fileResult.Passed = result.TestResult.Passed
	fileResult.Failed = result.TestResult.Failed
	fileResult.Skipped = result.TestResult.Skipped
	fileResult.Success = result.Success()
	fileResult.Assertions = result.Assertions
	f.TraceID = result.RunID

	if opts.Format != "json" {
		printFileResult(f, fileResult)
	}
	return fileResult
}

func printFileFailure(opts *RunOptions, f *OutputFormatter, file, msg string) {
	if opts.Format == "json" {
		return
	}
	fmt.Fprintf(f.Writer, "✗ %s\n", file)
	fmt.Fprintf(f.Writer, "  %s\n", msg)
}

func printFileResult(f *OutputFormatter, r FileResult) {
	mark := "✓"
	if !r.Success {
		mark = "✗"
	}
	fmt.Fprintf(f.Writer, "%s %s (%d passed, %d failed, %d skipped)\n",
		mark, r.File, r.Passed, r.Failed, r.Skipped)
	for _, a := range r.Assertions {
		if a.Outcome == runner.OutcomePassed && !f.Verbose {
			continue
		}
		line := fmt.Sprintf("  [%s] %s", a.Outcome, a.Message)
		if a.Detail != "" {
			line += ": " + a.Detail
		}
		fmt.Fprintln(f.Writer, line)
	}
}

// errorCode maps a fatal run error to its envelope code.
func errorCode(err error) string {
	switch {
	case spec.IsInvalidSpec(err):
		return ErrCodeInvalidSpec
	case wire.IsMalformedDocument(err):
		return ErrCodeMalformedDoc
	case oracle.IsOracleFailure(err):
		return ErrCodeOracleFailure
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return ErrCodeGeneric
	}
	return ErrCodeRunFailed
}
