// Package omz integrates with the Open Model Zoo: acquiring a checkout of
// the repository and composing the command lines for its bundled
// downloader and converter tools.
//
// The model set and the download attempt count are fixed. The stress-test
// suite pins its fixtures to these four models; changing the set means
// changing the suite, not a runtime decision.
package omz

import (
	"context"
	"fmt"
	"path/filepath"
)

const (
	// ModelNames is the fixed set of models acquired for the stress
	// tests, in the comma-separated form the downloader expects.
	ModelNames = "vgg16,mtcnn-r,mobilenet-ssd,ssd300"

	// NumAttempts is the per-model download attempt count passed to the
	// downloader. Retry behavior is entirely the downloader's; this tool
	// has no visibility into per-model success or failure.
	NumAttempts = 6

	// Precision pins the converter to 32-bit floats. FP16 is
	// intentionally not requested; drop the flag from ConvertCommand if
	// both precisions become required.
	Precision = "FP32"
)

// Runner executes a composed shell command. Satisfied by shell.Runner;
// tests substitute a recording implementation.
type Runner interface {
	Run(ctx context.Context, cmdline string) error
}

// DownloaderPath returns the path of the downloader tool inside an Open
// Model Zoo checkout.
func DownloaderPath(repo string) string {
	return filepath.Join(repo, "tools", "downloader", "downloader.py")
}

// ConverterPath returns the path of the converter tool inside an Open
// Model Zoo checkout.
func ConverterPath(repo string) string {
	return filepath.Join(repo, "tools", "downloader", "converter.py")
}

// DownloaderRequirements returns the downloader's requirement manifest
// inside an Open Model Zoo checkout.
func DownloaderRequirements(repo string) string {
	return filepath.Join(repo, "tools", "downloader", "requirements.in")
}

// DownloadCommand composes the downloader invocation for the fixed model
// set.
func DownloadCommand(repo, modelsOutDir, cacheDir string) string {
	return fmt.Sprintf("%s --name %q --num_attempts %d --output_dir %s --cache_dir %s",
		DownloaderPath(repo), ModelNames, NumAttempts, modelsOutDir, cacheDir)
}

// ConvertCommand composes the converter invocation for the fixed model
// set. python is the interpreter that both runs converter.py and is
// passed to it via -p for its worker subprocesses. jobs is the converter
// worker count, normally the host CPU count.
func ConvertCommand(repo, python, irsOutDir, modelsOutDir, moTool string, jobs int) string {
	return fmt.Sprintf("%s %s --name %q -p %s --precision=%s --output_dir %s --download_dir %s --mo %s --jobs %d",
		python, ConverterPath(repo), ModelNames, python, Precision, irsOutDir, modelsOutDir, moTool, jobs)
}

// DownloadModels runs the downloader for the fixed model set.
func DownloadModels(ctx context.Context, runner Runner, repo, modelsOutDir, cacheDir string) error {
	return runner.Run(ctx, DownloadCommand(repo, modelsOutDir, cacheDir))
}

// ConvertModels runs the converter for the fixed model set.
func ConvertModels(ctx context.Context, runner Runner, repo, python, irsOutDir, modelsOutDir, moTool string, jobs int) error {
	return runner.Run(ctx, ConvertCommand(repo, python, irsOutDir, modelsOutDir, moTool, jobs))
}
