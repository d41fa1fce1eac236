package omz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordRunner records composed command lines instead of executing them,
// optionally failing on commands containing failOn. Shared by the tests
// in this package.
type recordRunner struct {
	commands []string
	failOn   string
	err      error
}

func (r *recordRunner) Run(_ context.Context, cmdline string) error {
	r.commands = append(r.commands, cmdline)
	if r.failOn != "" && strings.Contains(cmdline, r.failOn) {
		return r.err
	}
	return nil
}

// TestPrepareRepoWithSuppliedPath verifies that a supplied checkout is
// used as-is: no clone command, and notably no existence check. A bad
// path is left to fail at the first downstream command that touches it.
func TestPrepareRepoWithSuppliedPath(t *testing.T) {
	rec := &recordRunner{}

	repo, err := PrepareRepo(context.Background(), rec, "/definitely/not/there", "/tmp/_open_model_zoo", false)
	require.NoError(t, err)
	assert.Equal(t, "/definitely/not/there", repo)
	assert.Empty(t, rec.commands, "no command may be issued when a checkout is supplied")
}

// TestPrepareRepoClones verifies the clone path: the fixed public URL,
// cloned into the given directory.
func TestPrepareRepoClones(t *testing.T) {
	rec := &recordRunner{}
	cloneDir := filepath.Join(t.TempDir(), "_open_model_zoo")

	repo, err := PrepareRepo(context.Background(), rec, "", cloneDir, false)
	require.NoError(t, err)
	assert.Equal(t, cloneDir, repo)

	require.Len(t, rec.commands, 1)
	assert.Equal(t, "git clone https://github.com/opencv/open_model_zoo "+cloneDir, rec.commands[0])
}

// TestPrepareRepoRemovesStaleCheckout verifies a pre-existing directory
// at the clone location is removed before cloning.
func TestPrepareRepoRemovesStaleCheckout(t *testing.T) {
	rec := &recordRunner{}
	cloneDir := filepath.Join(t.TempDir(), "_open_model_zoo")

	// Simulate a leftover partial clone.
	require.NoError(t, os.MkdirAll(filepath.Join(cloneDir, "tools"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cloneDir, "stale"), []byte("x"), 0644))

	_, err := PrepareRepo(context.Background(), rec, "", cloneDir, false)
	require.NoError(t, err)

	_, statErr := os.Stat(cloneDir)
	assert.True(t, os.IsNotExist(statErr), "stale checkout should be removed before the clone command runs")
}

// TestPrepareRepoDryRunKeepsExistingCheckout verifies a dry run touches
// nothing on disk: a real checkout sitting at the clone location must
// survive, while the clone command is still handed to the runner for
// logging.
func TestPrepareRepoDryRunKeepsExistingCheckout(t *testing.T) {
	rec := &recordRunner{}
	cloneDir := filepath.Join(t.TempDir(), "_open_model_zoo")

	marker := filepath.Join(cloneDir, "README.md")
	require.NoError(t, os.MkdirAll(cloneDir, 0755))
	require.NoError(t, os.WriteFile(marker, []byte("# OMZ\n"), 0644))

	_, err := PrepareRepo(context.Background(), rec, "", cloneDir, true)
	require.NoError(t, err)

	_, statErr := os.Stat(marker)
	assert.NoError(t, statErr, "dry run must not delete the existing checkout")
	require.Len(t, rec.commands, 1)
	assert.Contains(t, rec.commands[0], "git clone")
}

// TestPrepareRepoCloneFailure verifies a failing clone aborts with the
// runner's error.
func TestPrepareRepoCloneFailure(t *testing.T) {
	failure := errors.New("exit status 128")
	rec := &recordRunner{failOn: "git clone", err: failure}

	_, err := PrepareRepo(context.Background(), rec, "", filepath.Join(t.TempDir(), "omz"), false)
	assert.ErrorIs(t, err, failure)
}
