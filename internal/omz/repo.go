package omz

import (
	"context"
	"fmt"
	"os"

	"github.com/omz-tools/get-testdata/internal/model"
)

// CloneURL is the public Open Model Zoo repository cloned when no local
// checkout is supplied.
const CloneURL = "https://github.com/opencv/open_model_zoo"

// PrepareRepo returns the Open Model Zoo checkout to use for the rest of
// the pipeline.
//
// When repoPath is non-empty it is returned as-is. Its existence is
// deliberately not verified here; a bad path surfaces as a failure of
// whichever downstream command first touches it.
//
// Otherwise any stale checkout at cloneDir is removed and the repository
// is cloned fresh. A clone failure aborts the pipeline with the git exit
// code.
//
// When dryRun is set, nothing on disk is touched: the removal is skipped
// along with every command, and the clone command is only logged by the
// runner.
func PrepareRepo(ctx context.Context, runner Runner, repoPath, cloneDir string, dryRun bool) (string, error) {
	if repoPath != "" {
		return repoPath, nil
	}

	// A previous run may have left a partial or outdated clone behind.
	// The removal happens in-process rather than through the runner, so
	// it needs its own dry-run gate.
	if !dryRun {
		if err := os.RemoveAll(cloneDir); err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to remove stale checkout at %s", cloneDir), err)
		}
	}

	cmd := fmt.Sprintf("git clone %s %s", CloneURL, cloneDir)
	if err := runner.Run(ctx, cmd); err != nil {
		return "", err
	}
	return cloneDir, nil
}
