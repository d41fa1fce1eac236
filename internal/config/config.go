// Package config resolves the get-testdata configuration from its four
// layers: built-in defaults, GET_TESTDATA_* environment variables, an
// optional YAML config file, and command-line flags. Later layers win.
//
// Path resolution rule: a path that was left at its built-in default is
// canonicalized relative to the directory containing the executable, so
// the tool produces the same layout regardless of where it is invoked
// from. A path supplied by the user (flag, config file, or environment)
// is canonicalized relative to the invocation working directory instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Built-in defaults. The relative defaults assume the binary sits next to
// the stress-test scripts inside the source tree, two levels below the
// model-optimizer checkout.
const (
	DefaultMOTool       = "../../model-optimizer/mo.py"
	DefaultModelsOutDir = "../_omz_out/models"
	DefaultIRsOutDir    = "../_omz_out/irs"
	DefaultCacheDir     = "../_omz_out/cache"

	// DefaultPython is the ambient interpreter used to create the virtual
	// environment, and to run the converter when --no_venv is set.
	DefaultPython = "python3"
)

// Fixed locations that are not configurable, kept relative here and
// resolved in Resolve.
const (
	// cloneDirName is where the Open Model Zoo is cloned when --omz_repo
	// is not supplied. Resolved relative to the executable directory.
	cloneDirName = "../_open_model_zoo"

	// venvDirName is where the virtual environment is created.
	// Resolved relative to the invocation working directory.
	venvDirName = ".stress_venv"
)

// Settings holds the raw configuration values before path resolution.
// Values accumulate layer by layer: NewSettings seeds the defaults, then
// ApplyEnv, ApplyFile, and the CLI flag binding each overwrite the fields
// they carry and mark them as explicitly supplied.
type Settings struct {
	// OMZRepo is a pre-existing Open Model Zoo checkout. Empty means the
	// repository will be cloned. Existence is deliberately not verified;
	// a bad path surfaces when the first downstream command touches it.
	OMZRepo string

	// MOTool is the Model Optimizer entry point passed to the converter.
	MOTool string

	// ModelsOutDir receives the downloaded model files.
	ModelsOutDir string

	// IRsOutDir receives the converted IR files.
	IRsOutDir string

	// CacheDir is the downloader's cache directory.
	CacheDir string

	// NoVenv skips virtual environment preparation; the conversion step
	// then uses the ambient interpreter.
	NoVenv bool

	// DryRun logs every composed command without executing it.
	DryRun bool

	// Python is the ambient interpreter executable.
	Python string

	// explicit tracks which path settings were supplied by the user
	// (any layer above the built-in defaults), keyed by flag name.
	explicit map[string]bool
}

// Flag names, shared between the setting layers and the CLI binding.
const (
	FlagOMZRepo      = "omz_repo"
	FlagMOTool       = "mo_tool"
	FlagModelsOutDir = "omz_models_out_dir"
	FlagIRsOutDir    = "omz_irs_out_dir"
	FlagCacheDir     = "omz_cache_dir"
)

// NewSettings returns Settings seeded with the built-in defaults.
func NewSettings() *Settings {
	return &Settings{
		MOTool:       DefaultMOTool,
		ModelsOutDir: DefaultModelsOutDir,
		IRsOutDir:    DefaultIRsOutDir,
		CacheDir:     DefaultCacheDir,
		Python:       DefaultPython,
		explicit:     make(map[string]bool),
	}
}

// MarkExplicit records that the named path setting was supplied by the
// user rather than defaulted. The CLI layer calls this for every changed
// flag; ApplyEnv and ApplyFile call it for the fields they set.
func (s *Settings) MarkExplicit(name string) {
	s.explicit[name] = true
}

// IsExplicit reports whether the named path setting was user-supplied.
func (s *Settings) IsExplicit(name string) bool {
	return s.explicit[name]
}

// Config is the fully resolved, immutable configuration consumed by the
// pipeline. All paths are absolute.
type Config struct {
	// OMZRepo is the checkout to use, or empty if CloneDir must be
	// populated by cloning first.
	OMZRepo string

	// CloneDir is the fixed temporary clone location, used only when
	// OMZRepo is empty.
	CloneDir string

	MOTool       string
	ModelsOutDir string
	IRsOutDir    string
	CacheDir     string

	// VenvDir is where the virtual environment lives when NoVenv is false.
	VenvDir string

	NoVenv bool
	DryRun bool
	Python string
}

// Resolve canonicalizes all path settings against the given base
// directories and returns the immutable Config. exeDir is the directory
// containing the running executable; workDir is the invocation working
// directory.
func (s *Settings) Resolve(exeDir, workDir string) (*Config, error) {
	if exeDir == "" || workDir == "" {
		return nil, fmt.Errorf("config: both exeDir and workDir are required")
	}

	cfg := &Config{
		MOTool:       s.resolvePath(s.MOTool, FlagMOTool, exeDir, workDir),
		ModelsOutDir: s.resolvePath(s.ModelsOutDir, FlagModelsOutDir, exeDir, workDir),
		IRsOutDir:    s.resolvePath(s.IRsOutDir, FlagIRsOutDir, exeDir, workDir),
		CacheDir:     s.resolvePath(s.CacheDir, FlagCacheDir, exeDir, workDir),
		CloneDir:     filepath.Clean(filepath.Join(exeDir, cloneDirName)),
		VenvDir:      filepath.Clean(filepath.Join(workDir, venvDirName)),
		NoVenv:       s.NoVenv,
		DryRun:       s.DryRun,
		Python:       s.Python,
	}

	// --omz_repo has no default, so when present it is always
	// user-supplied and resolves against the working directory.
	if s.OMZRepo != "" {
		cfg.OMZRepo = resolveAgainst(s.OMZRepo, workDir)
	}

	return cfg, nil
}

// resolvePath canonicalizes one path setting: user-supplied values resolve
// against workDir, defaulted values against exeDir.
func (s *Settings) resolvePath(value, name, exeDir, workDir string) string {
	if s.IsExplicit(name) {
		return resolveAgainst(value, workDir)
	}
	return resolveAgainst(value, exeDir)
}

// resolveAgainst joins a possibly relative path with base and cleans it.
// Absolute paths pass through untouched apart from cleaning.
func resolveAgainst(path, base string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}

// ExecutableDir returns the directory containing the running executable,
// with symlinks resolved. This anchors the default path layout to the
// binary's location rather than the caller's working directory.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("config: cannot locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		// A binary deleted while running still has a usable path.
		resolved = exe
	}
	return filepath.Dir(resolved), nil
}

// VenvPython returns the interpreter path inside a virtual environment
// directory. The layout differs between POSIX platforms and Windows;
// the choice follows the compile-time target.
func VenvPython(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts", "python3.exe")
	}
	return filepath.Join(venvDir, "bin", "python3")
}
