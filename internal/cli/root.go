// Package cli implements the cobra command for get-testdata.
//
// The tool is a single command, not a command tree: it composes and runs
// the fixed five-step acquisition pipeline (resolve configuration, prepare
// the Open Model Zoo checkout, download models, prepare the virtual
// environment, convert models to IRs). This file defines the root command,
// flag binding, and the exit-code handling; the pipeline itself lives in
// pipeline.go.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/omz-tools/get-testdata/internal/config"
	"github.com/omz-tools/get-testdata/internal/logging"
	"github.com/omz-tools/get-testdata/internal/model"
	"github.com/omz-tools/get-testdata/internal/shell"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the raw flag values for the root command.
// They overlay the lower configuration layers (defaults, environment,
// config file) only when actually changed on the command line.
type rootFlags struct {
	omzRepo      string // --omz_repo: pre-existing checkout, skips cloning
	moTool       string // --mo_tool: Model Optimizer entry point
	modelsOutDir string // --omz_models_out_dir: download destination
	irsOutDir    string // --omz_irs_out_dir: conversion output destination
	cacheDir     string // --omz_cache_dir: download cache
	configFile   string // --config: optional YAML config file
	noVenv       bool   // --no_venv: skip the virtual environment
	dryRun       bool   // --dry_run: log commands without executing
	verbose      bool   // --verbose: debug-level logging
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

// newRootCommand builds the command and also returns its flag storage,
// which the tests use to exercise the configuration layering.
func newRootCommand() (*cobra.Command, *rootFlags) {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "get-testdata",
		Short: "Acquire model IRs for stress tests",
		Long: `get-testdata acquires the model IR fixtures used by the stress-test suite.

It clones the Open Model Zoo (unless an existing checkout is supplied),
downloads a fixed set of pretrained models with the zoo's downloader,
prepares a virtual environment with the converter's requirements (unless
--no_venv), and converts the downloaded models to FP32 IRs with the zoo's
converter and the Model Optimizer.

All work is delegated to external commands; the first command exiting
non-zero aborts the run, and the process exits with that command's code.`,

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// SilenceErrors lets Execute format errors and map exit codes.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoot(cmd, flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.omzRepo, config.FlagOMZRepo, "",
		"Path to an Open Model Zoo checkout; skips the cloning step")
	rootCmd.Flags().StringVar(&flags.moTool, config.FlagMOTool, config.DefaultMOTool,
		"Path to the Model Optimizer entry point, used by the converter")
	rootCmd.Flags().StringVar(&flags.modelsOutDir, config.FlagModelsOutDir, config.DefaultModelsOutDir,
		"Directory to download models into")
	rootCmd.Flags().StringVar(&flags.irsOutDir, config.FlagIRsOutDir, config.DefaultIRsOutDir,
		"Directory to put converted IRs into")
	rootCmd.Flags().StringVar(&flags.cacheDir, config.FlagCacheDir, config.DefaultCacheDir,
		"Download cache directory")
	rootCmd.Flags().BoolVar(&flags.noVenv, "no_venv", false,
		"Skip the virtual environment and convert with the ambient interpreter")
	rootCmd.Flags().StringVar(&flags.configFile, "config", "",
		"YAML config file supplying defaults for the other flags")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry_run", false,
		"Log every command without executing it")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"Enable debug logging")

	return rootCmd, flags
}

// runRoot assembles the configuration layers, resolves paths, and hands
// off to the pipeline with a real shell runner.
func runRoot(cmd *cobra.Command, flags *rootFlags) error {
	settings, err := buildSettings(cmd, flags)
	if err != nil {
		return err
	}

	exeDir, err := config.ExecutableDir()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to locate executable directory", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	cfg, err := settings.Resolve(exeDir, workDir)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve configuration", err)
	}

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	log := logging.New(os.Stdout, level)
	runner := shell.NewRunner(log, cfg.DryRun)

	return runPipeline(cmd.Context(), cfg, log, runner)
}

// buildSettings layers the configuration sources under the command-line
// flags: built-in defaults, then environment, then the optional config
// file, then any flags actually changed on the command line.
func buildSettings(cmd *cobra.Command, flags *rootFlags) (*config.Settings, error) {
	settings := config.NewSettings()

	if err := settings.ApplyEnv(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid environment configuration", err)
	}
	if flags.configFile != "" {
		if err := settings.ApplyFile(flags.configFile); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError, "invalid config file", err)
		}
	}

	// Only flags the user actually set override the lower layers, and
	// only those count as explicit for path resolution.
	if cmd.Flags().Changed(config.FlagOMZRepo) {
		settings.OMZRepo = flags.omzRepo
		settings.MarkExplicit(config.FlagOMZRepo)
	}
	if cmd.Flags().Changed(config.FlagMOTool) {
		settings.MOTool = flags.moTool
		settings.MarkExplicit(config.FlagMOTool)
	}
	if cmd.Flags().Changed(config.FlagModelsOutDir) {
		settings.ModelsOutDir = flags.modelsOutDir
		settings.MarkExplicit(config.FlagModelsOutDir)
	}
	if cmd.Flags().Changed(config.FlagIRsOutDir) {
		settings.IRsOutDir = flags.irsOutDir
		settings.MarkExplicit(config.FlagIRsOutDir)
	}
	if cmd.Flags().Changed(config.FlagCacheDir) {
		settings.CacheDir = flags.cacheDir
		settings.MarkExplicit(config.FlagCacheDir)
	}
	if cmd.Flags().Changed("no_venv") {
		settings.NoVenv = flags.noVenv
	}
	settings.DryRun = flags.dryRun

	return settings, nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError values carry their own exit codes, including the propagated
// exit status of a failed shelled-out command; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		log := logging.New(os.Stderr, slog.LevelInfo)

		if cliErr, ok := err.(*model.CLIError); ok {
			log.Error(cliErr.Error())
			os.Exit(int(cliErr.Code))
		}

		log.Error(err.Error())
		os.Exit(int(model.ExitGeneralError))
	}
}
