package omz

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDownloadCommand verifies the downloader invocation: exactly the
// four fixed model names, the fixed attempt count, and the two
// directories.
func TestDownloadCommand(t *testing.T) {
	cmd := DownloadCommand("/tmp/omz", "/data/models", "/data/cache")

	assert.Equal(t,
		`/tmp/omz/tools/downloader/downloader.py --name "vgg16,mtcnn-r,mobilenet-ssd,ssd300" --num_attempts 6 --output_dir /data/models --cache_dir /data/cache`,
		cmd)
}

// TestDownloadCommandModelSet pins the fixed model set itself: four
// models, no more, no less.
func TestDownloadCommandModelSet(t *testing.T) {
	models := strings.Split(ModelNames, ",")
	assert.Equal(t, []string{"vgg16", "mtcnn-r", "mobilenet-ssd", "ssd300"}, models)
}

// TestConvertCommand verifies the converter invocation: the interpreter
// runs converter.py and is also passed via -p, precision is pinned to
// FP32, and the worker count is forwarded as --jobs.
func TestConvertCommand(t *testing.T) {
	cmd := ConvertCommand("/tmp/omz", "/venv/bin/python3", "/data/irs", "/data/models", "/mo/mo.py", 8)

	assert.Equal(t,
		`/venv/bin/python3 /tmp/omz/tools/downloader/converter.py --name "vgg16,mtcnn-r,mobilenet-ssd,ssd300" -p /venv/bin/python3 --precision=FP32 --output_dir /data/irs --download_dir /data/models --mo /mo/mo.py --jobs 8`,
		cmd)
}

// TestConvertCommandPinsFP32 verifies FP32 is the only precision
// requested; FP16 must not appear.
func TestConvertCommandPinsFP32(t *testing.T) {
	cmd := ConvertCommand("/tmp/omz", "python3", "/irs", "/models", "/mo/mo.py", 4)

	assert.Contains(t, cmd, "--precision=FP32")
	assert.NotContains(t, cmd, "FP16")
}

// TestToolPaths verifies the tool locations inside a checkout.
func TestToolPaths(t *testing.T) {
	assert.Equal(t, "/omz/tools/downloader/downloader.py", DownloaderPath("/omz"))
	assert.Equal(t, "/omz/tools/downloader/converter.py", ConverterPath("/omz"))
	assert.Equal(t, "/omz/tools/downloader/requirements.in", DownloaderRequirements("/omz"))
}

// TestDownloadModelsUsesRunner verifies the step funnels its composed
// command through the runner.
func TestDownloadModelsUsesRunner(t *testing.T) {
	rec := &recordRunner{}
	err := DownloadModels(context.Background(), rec, "/omz", "/models", "/cache")

	assert.NoError(t, err)
	assert.Equal(t, []string{DownloadCommand("/omz", "/models", "/cache")}, rec.commands)
}

// TestConvertModelsUsesRunner verifies the same for the conversion step.
func TestConvertModelsUsesRunner(t *testing.T) {
	rec := &recordRunner{}
	err := ConvertModels(context.Background(), rec, "/omz", "python3", "/irs", "/models", "/mo/mo.py", 2)

	assert.NoError(t, err)
	assert.Equal(t, []string{ConvertCommand("/omz", "python3", "/irs", "/models", "/mo/mo.py", 2)}, rec.commands)
}

// TestConvertModelsPropagatesFailure verifies a converter failure is
// returned unchanged.
func TestConvertModelsPropagatesFailure(t *testing.T) {
	rec := &recordRunner{failOn: "converter.py", err: fmt.Errorf("exit 2")}
	err := ConvertModels(context.Background(), rec, "/omz", "python3", "/irs", "/models", "/mo/mo.py", 2)

	assert.EqualError(t, err, "exit 2")
}
