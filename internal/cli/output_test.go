package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf, TraceID: "run-123"}

	require.NoError(t, f.Success(map[string]int{"passed": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-123", resp.TraceID)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_SuccessText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success("all specs passed"))
	assert.Equal(t, "all specs passed\n", buf.String())
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Error(ErrCodeOracleFailure, "engine exited with failure", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeOracleFailure, resp.Error.Code)
	assert.Equal(t, "engine exited with failure", resp.Error.Message)
}

func TestOutputFormatter_ErrorText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Error(ErrCodeInvalidSpec, "negative width", nil))
	assert.Contains(t, buf.String(), "Error [E_INVALID_SPEC]: negative width")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}

	f.VerboseLog("checking %s", "flexbox.json")

	// Verbose output must not corrupt the JSON stream on Writer.
	assert.Empty(t, out.String())
	assert.Equal(t, "checking flexbox.json\n", errOut.String())
}

func TestOutputFormatter_VerboseLogDisabled(t *testing.T) {
	var out bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, Verbose: false}

	f.VerboseLog("should not appear")
	assert.Empty(t, out.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "run aborted", assert.AnError)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))
}

func TestExitError_Unwrap(t *testing.T) {
	inner := errors.New("engine crashed")
	err := WrapExitError(ExitFailure, "run aborted", inner)

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "run aborted")
	assert.Contains(t, err.Error(), "engine crashed")
}
