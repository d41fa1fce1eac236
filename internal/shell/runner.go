// Package shell executes the composed command lines of the acquisition
// pipeline through the system shell.
//
// Commands are built as single strings (some of them join multiple
// invocations with &&, matching what the pip install step needs) and run
// synchronously with stdout and stderr inherited from the parent process.
// Nothing is captured and no timeout is applied; a hung subprocess blocks
// the pipeline. On failure the subprocess exit status is propagated
// unchanged inside a model.CLIError so the process can exit with it.
package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/omz-tools/get-testdata/internal/model"
)

// Runner logs and executes shell commands for the pipeline.
//
// When DryRun is set, Run logs each command at the usual level and
// reports success without executing anything, which lets users inspect
// the exact command lines the pipeline would issue.
type Runner struct {
	log    *slog.Logger
	dryRun bool
}

// NewRunner creates a Runner that logs every command to the given logger.
func NewRunner(log *slog.Logger, dryRun bool) *Runner {
	return &Runner{log: log, dryRun: dryRun}
}

// Run logs the command line at INFO, then executes it through the
// platform shell with inherited stdout/stderr.
//
// The returned error is a *model.CLIError whose Code is the subprocess
// exit status, so a pipeline abort exits the process with the same code
// the failing tool reported. A command that could not be started at all
// (shell missing, fork failure) maps to ExitGeneralError.
func (r *Runner) Run(ctx context.Context, cmdline string) error {
	r.log.Info(cmdline)
	if r.dryRun {
		return nil
	}

	shell, flag := platformShell()
	// #nosec G204 -- command lines are composed internally from resolved
	// configuration, mirroring the tool's documented shell-out behavior.
	cmd := exec.CommandContext(ctx, shell, flag, cmdline)

	// Subprocess output streams straight to the caller's terminal.
	// The downloader and converter print their own progress; capturing
	// it here would only buffer what users want to see live.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return model.WrapCLIError(
			model.ExitCode(exitErr.ExitCode()),
			fmt.Sprintf("command failed with exit code %d", exitErr.ExitCode()),
			err,
		)
	}
	return model.WrapCLIError(model.ExitGeneralError, "command could not be started", err)
}

// platformShell returns the shell binary and its command flag for the
// compile-time target platform.
func platformShell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "/bin/sh", "-c"
}
