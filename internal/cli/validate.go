package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/boxproof/boxproof/internal/schema"
	"github.com/boxproof/boxproof/internal/spec"
	"github.com/boxproof/boxproof/internal/wire"
)

// ValidationResult holds validation results for one spec file.
type ValidationResult struct {
	File   string         `json:"file"`
	Valid  bool           `json:"valid"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spec-file>...",
		Short: "Validate spec files without invoking an engine",
		Long: `Validate test spec files without invoking a layout engine.

Runs three checks per file: the CUE document schema (reports every
violation with positions), the wire codec's required-field rules, and
the spec-level invariants (non-negative sizes, at least one assertion).

Exit codes:
  0 - All files valid
  1 - One or more files invalid
  2 - Command error (unreadable file, etc.)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	results := make([]ValidationResult, 0, len(files))
	invalid := 0

	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		result := validateFile(file)
		results = append(results, result)
		if !result.Valid {
			invalid++
		}
		if opts.Format != "json" {
			printValidation(formatter, result)
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d file(s) invalid", invalid, len(files)))
	}
	return nil
}

// validateFile runs the schema, codec, and spec-invariant checks on a
// single file.
func validateFile(file string) ValidationResult {
	result := ValidationResult{File: file}

	s, data, err := wire.ReadSpecFile(file)
	if err != nil {
		result.Issues = append(result.Issues, schema.Issue{Message: err.Error()})
		return result
	}

	// Schema pass runs on the JSON document bytes so positions line up
	// with what the oracle would receive.
	if err := schema.ValidateSpec(filepath.Base(file), data); err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			result.Issues = append(result.Issues, ve.Issues...)
		} else {
			result.Issues = append(result.Issues, schema.Issue{Message: err.Error()})
		}
		return result
	}

	if err := s.Validate(); err != nil {
		var ise *spec.InvalidSpecError
		if errors.As(err, &ise) {
			result.Issues = append(result.Issues, schema.Issue{Pos: ise.Field, Message: ise.Message})
		} else {
			result.Issues = append(result.Issues, schema.Issue{Message: err.Error()})
		}
		return result
	}

	result.Valid = true
	return result
}

func printValidation(f *OutputFormatter, result ValidationResult) {
	if result.Valid {
		fmt.Fprintf(f.Writer, "✓ %s\n", result.File)
		return
	}
	fmt.Fprintf(f.Writer, "✗ %s\n", result.File)
	for _, issue := range result.Issues {
		if issue.Pos != "" {
			fmt.Fprintf(f.Writer, "  %s: %s\n", issue.Pos, issue.Message)
		} else {
			fmt.Fprintf(f.Writer, "  %s\n", issue.Message)
		}
	}
}
