package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes a YAML config file into a temp dir and returns
// its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "get_testdata.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestApplyFile verifies that config file values overlay the defaults and
// count as user-supplied for path resolution.
func TestApplyFile(t *testing.T) {
	path := writeConfigFile(t, `
omz_repo: /opt/open_model_zoo
omz_models_out_dir: data/models
no_venv: true
python: python3.12
`)

	s := NewSettings()
	require.NoError(t, s.ApplyFile(path))

	assert.Equal(t, "/opt/open_model_zoo", s.OMZRepo)
	assert.True(t, s.IsExplicit(FlagOMZRepo))
	assert.Equal(t, "data/models", s.ModelsOutDir)
	assert.True(t, s.IsExplicit(FlagModelsOutDir))
	assert.True(t, s.NoVenv)
	assert.Equal(t, "python3.12", s.Python)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultIRsOutDir, s.IRsOutDir)
	assert.False(t, s.IsExplicit(FlagIRsOutDir))
}

// TestApplyFileExplicitFalse verifies that `no_venv: false` in the file
// overrides a true value from a lower layer. The pointer-typed field
// distinguishes an explicit false from an absent key.
func TestApplyFileExplicitFalse(t *testing.T) {
	path := writeConfigFile(t, "no_venv: false\n")

	s := NewSettings()
	s.NoVenv = true
	require.NoError(t, s.ApplyFile(path))
	assert.False(t, s.NoVenv)
}

// TestApplyFileUnknownKey verifies that typos in the config file are
// rejected instead of silently ignored.
func TestApplyFileUnknownKey(t *testing.T) {
	path := writeConfigFile(t, "omz_modles_out_dir: data/models\n")

	err := NewSettings().ApplyFile(path)
	assert.Error(t, err)
}

// TestApplyFileMissing verifies the error for an unreadable file path.
func TestApplyFileMissing(t *testing.T) {
	err := NewSettings().ApplyFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
