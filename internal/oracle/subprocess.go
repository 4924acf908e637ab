package oracle

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/boxproof/boxproof/internal/spec"
	"github.com/boxproof/boxproof/internal/wire"
)

// maxStderr bounds how much engine stderr is carried in an error.
const maxStderr = 4 * 1024

// Subprocess invokes a layout engine binary over stdio: one layout
// request document on stdin, one computed tree document on stdout.
//
// Exit contract: the engine exits 0 and writes a well-formed computed
// tree on success. A non-zero exit, a transport error, or malformed
// stdout all classify as OracleError.
type Subprocess struct {
	// Path is the engine binary to execute.
	Path string

	// Args are additional arguments passed to the binary.
	Args []string
}

// NewSubprocess creates a subprocess oracle for the given engine binary.
func NewSubprocess(path string, args ...string) *Subprocess {
	return &Subprocess{Path: path, Args: args}
}

// ComputeLayout implements Oracle.
func (s *Subprocess) ComputeLayout(ctx context.Context, req *wire.LayoutRequest) (*spec.ComputedNode, error) {
	input, err := wire.EncodeLayoutRequest(req)
	if err != nil {
		return nil, &OracleError{Stage: "write", Message: "failed to encode layout request", Err: err}
	}

	cmd := exec.CommandContext(ctx, s.Path, s.Args...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Prefer the context error: a killed process reports a generic
		// exit failure that would mask the cancellation.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &OracleError{
				Stage:   "exit",
				Message: "engine invocation cancelled",
				Err:     ctxErr,
				Stderr:  truncateStderr(stderr.String()),
			}
		}
		return nil, &OracleError{
			Stage:   "exit",
			Message: "engine exited with failure",
			Err:     err,
			Stderr:  truncateStderr(stderr.String()),
		}
	}

	computed, err := wire.DecodeComputed(stdout.Bytes())
	if err != nil {
		return nil, &OracleError{
			Stage:   "decode",
			Message: "engine produced malformed output",
			Err:     err,
			Stderr:  truncateStderr(stderr.String()),
		}
	}
	return computed, nil
}

func truncateStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		return s[:maxStderr] + "\n... (truncated)"
	}
	return s
}
