package wire

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxproof/boxproof/internal/testutil"
)

func TestReadSpecFile_JSON(t *testing.T) {
	s, data, err := ReadSpecFile(filepath.Join("testdata", "space_between.json"))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.Equal(t, testutil.SpaceBetweenSpec(), s)
}

func TestReadSpecFile_YAML(t *testing.T) {
	s, _, err := ReadSpecFile(filepath.Join("testdata", "space_between.yaml"))
	require.NoError(t, err)

	// YAML is authoring sugar only; the decoded spec is identical to the
	// JSON form.
	fromJSON, _, err := ReadSpecFile(filepath.Join("testdata", "space_between.json"))
	require.NoError(t, err)
	assert.Equal(t, fromJSON, s)
}

func TestReadSpecFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.toml")
	require.NoError(t, os.WriteFile(path, []byte("layout = 1"), 0o644))

	_, _, err := ReadSpecFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported spec file extension")
}

func TestReadSpecFile_MissingFile(t *testing.T) {
	_, _, err := ReadSpecFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read spec file")
}

func TestReadSpecFile_InvalidYAML(t *testing.T) {
	_, _, err := ReadSpecFile(filepath.Join("testdata", "not_yaml.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestReadSpecFile_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incomplete.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"layout":{"type":"container"}}`), 0o644))

	_, _, err := ReadSpecFile(path)
	require.Error(t, err)
	assert.True(t, IsMalformedDocument(err))
}
