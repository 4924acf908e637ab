package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxproof/boxproof/internal/oracle"
	"github.com/boxproof/boxproof/internal/spec"
	"github.com/boxproof/boxproof/internal/testutil"
	"github.com/boxproof/boxproof/internal/wire"
)

func encodeSpecDoc(t *testing.T) string {
	t.Helper()
	data, err := wire.EncodeSpec(testutil.SpaceBetweenSpec())
	require.NoError(t, err)
	return string(data)
}

func TestEvalCommand_AllPass(t *testing.T) {
	useOracle(t, conformingOracle())

	out, _, err := execute(t, encodeSpecDoc(t), "eval", "--engine", "fake")
	require.NoError(t, err)
	assert.Equal(t, `{"failed":0,"passed":3,"skipped":0}`+"\n", out)
}

func TestEvalCommand_FailedAssertionsStillExitZero(t *testing.T) {
	// Assertion outcomes are data, not process failure: a completed run
	// exits 0 even when assertions failed.
	useOracle(t, oracle.Func(func(ctx context.Context, req *wire.LayoutRequest) (*spec.ComputedNode, error) {
		computed := testutil.SpaceBetweenComputed()
		for _, child := range computed.Children {
			child.X += 100
		}
		return computed, nil
	}))

	out, _, err := execute(t, encodeSpecDoc(t), "eval", "--engine", "fake")
	require.NoError(t, err)
	assert.Equal(t, `{"failed":2,"passed":1,"skipped":0}`+"\n", out)
}

func TestEvalCommand_MalformedInputIsFatal(t *testing.T) {
	useOracle(t, conformingOracle())

	out, _, err := execute(t, `{"layout":{"type":"container"}}`, "eval", "--engine", "fake")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	// Fatal: no result document, not even a partial one.
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "failed to decode spec document")
}

func TestEvalCommand_InvalidSpecIsFatal(t *testing.T) {
	useOracle(t, conformingOracle())

	s := testutil.SpaceBetweenSpec()
	s.Constraints.MaxWidth = testutil.F(-1)
	data, err := wire.EncodeSpec(s)
	require.NoError(t, err)

	out, _, execErr := execute(t, string(data), "eval", "--engine", "fake")
	require.Error(t, execErr)
	assert.Equal(t, ExitFailure, GetExitCode(execErr))
	assert.Empty(t, out)
	assert.Contains(t, execErr.Error(), "constraints.maxWidth")
}

func TestEvalCommand_OracleFailureIsFatal(t *testing.T) {
	useOracle(t, oracle.Func(func(ctx context.Context, req *wire.LayoutRequest) (*spec.ComputedNode, error) {
		return nil, &oracle.OracleError{Stage: "exit", Message: "engine crashed"}
	}))

	out, _, err := execute(t, encodeSpecDoc(t), "eval", "--engine", "fake")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, out)
}

func TestEvalCommand_MissingEngineFlag(t *testing.T) {
	_, _, err := execute(t, encodeSpecDoc(t), "eval")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEvalCommand_SkippedAssertionsCounted(t *testing.T) {
	useOracle(t, conformingOracle())

	s := testutil.SpaceBetweenSpec()
	s.Assertions = append(s.Assertions, testutil.LayoutAssertion("getX(child(root(), 99)) == 0", "no-such-child"))
	data, err := wire.EncodeSpec(s)
	require.NoError(t, err)

	out, _, execErr := execute(t, string(data), "eval", "--engine", "fake")
	require.NoError(t, execErr)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, `{"failed":0,"passed":3,"skipped":1}`, strings.TrimSpace(out))
}
