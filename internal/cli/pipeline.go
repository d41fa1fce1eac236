// Package cli, pipeline.go: the five-step acquisition pipeline.
//
// The steps run strictly in sequence and the first failure aborts the
// whole run:
//  1. Prepare the Open Model Zoo checkout (clone unless --omz_repo)
//  2. Download the fixed model set with the zoo's downloader
//  3. Prepare the virtual environment and install requirements
//     (skipped with --no_venv)
//  4. Convert the downloaded models to FP32 IRs with the zoo's converter
//
// (Step zero, configuration resolution, happens in root.go before the
// pipeline starts.)
package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/omz-tools/get-testdata/internal/config"
	"github.com/omz-tools/get-testdata/internal/model"
	"github.com/omz-tools/get-testdata/internal/omz"
	"github.com/omz-tools/get-testdata/internal/venv"
)

// CommandRunner executes a composed shell command. The production
// implementation is shell.Runner; pipeline tests substitute a recorder.
type CommandRunner interface {
	Run(ctx context.Context, cmdline string) error
}

// runPipeline executes the acquisition pipeline against the resolved
// configuration. Any error returned already carries the exit code to
// propagate (subprocess status for command failures).
func runPipeline(ctx context.Context, cfg *config.Config, log *slog.Logger, runner CommandRunner) error {
	// Step 1: prepare the Open Model Zoo checkout.
	log.Debug("starting step", "step", model.StepRepo)
	repo, err := omz.PrepareRepo(ctx, runner, cfg.OMZRepo, cfg.CloneDir, cfg.DryRun)
	if err != nil {
		return err
	}
	log.Debug("using Open Model Zoo checkout", "path", repo)

	// Step 2: download the fixed model set.
	log.Debug("starting step", "step", model.StepDownload)
	if err := omz.DownloadModels(ctx, runner, repo, cfg.ModelsOutDir, cfg.CacheDir); err != nil {
		return err
	}

	// Step 3: prepare the virtual environment, unless skipped. The
	// converter then runs with the environment's interpreter; with
	// --no_venv it runs with the ambient one.
	python := cfg.Python
	if !cfg.NoVenv {
		log.Debug("starting step", "step", model.StepVenv)
		env := venv.New(cfg.VenvDir, cfg.Python, runner)

		moDir := filepath.Dir(cfg.MOTool)
		manifests := []string{
			omz.DownloaderRequirements(repo),
			filepath.Join(moDir, "requirements.txt"),
			filepath.Join(moDir, "requirements_dev.txt"),
		}
		if err := env.CreateAndInstall(ctx, manifests...); err != nil {
			return err
		}
		python = env.Python()
	}

	// Step 4: convert the downloaded models to IRs. The converter
	// parallelizes internally across the host's CPU cores; this process
	// stays single-threaded throughout.
	log.Debug("starting step", "step", model.StepConvert)
	if err := omz.ConvertModels(ctx, runner, repo, python,
		cfg.IRsOutDir, cfg.ModelsOutDir, cfg.MOTool, runtime.NumCPU()); err != nil {
		return err
	}

	log.Info("test data ready", "irs_dir", cfg.IRsOutDir)
	return nil
}
