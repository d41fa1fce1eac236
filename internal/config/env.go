package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envSettings maps GET_TESTDATA_* environment variables onto the
// configuration layer between the built-in defaults and the config file.
// Only variables that are actually set override anything; unset variables
// leave the previous layer untouched.
type envSettings struct {
	// OMZRepo mirrors --omz_repo. Env: GET_TESTDATA_OMZ_REPO
	OMZRepo string `envconfig:"OMZ_REPO"`

	// MOTool mirrors --mo_tool. Env: GET_TESTDATA_MO_TOOL
	MOTool string `envconfig:"MO_TOOL"`

	// ModelsOutDir mirrors --omz_models_out_dir.
	// Env: GET_TESTDATA_OMZ_MODELS_OUT_DIR
	ModelsOutDir string `envconfig:"OMZ_MODELS_OUT_DIR"`

	// IRsOutDir mirrors --omz_irs_out_dir.
	// Env: GET_TESTDATA_OMZ_IRS_OUT_DIR
	IRsOutDir string `envconfig:"OMZ_IRS_OUT_DIR"`

	// CacheDir mirrors --omz_cache_dir.
	// Env: GET_TESTDATA_OMZ_CACHE_DIR
	CacheDir string `envconfig:"OMZ_CACHE_DIR"`

	// NoVenv mirrors --no_venv. Env: GET_TESTDATA_NO_VENV
	// A pointer distinguishes "unset" from an explicit false.
	NoVenv *bool `envconfig:"NO_VENV"`

	// Python overrides the ambient interpreter. Env: GET_TESTDATA_PYTHON
	Python string `envconfig:"PYTHON"`
}

// envPrefix is the common prefix of all environment variables read by
// this tool.
const envPrefix = "GET_TESTDATA"

// ApplyEnv overlays GET_TESTDATA_* environment variables onto the
// settings. Path values coming from the environment count as
// user-supplied for path resolution purposes.
func (s *Settings) ApplyEnv() error {
	var env envSettings
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("config: invalid environment: %w", err)
	}

	if env.OMZRepo != "" {
		s.OMZRepo = env.OMZRepo
		s.MarkExplicit(FlagOMZRepo)
	}
	if env.MOTool != "" {
		s.MOTool = env.MOTool
		s.MarkExplicit(FlagMOTool)
	}
	if env.ModelsOutDir != "" {
		s.ModelsOutDir = env.ModelsOutDir
		s.MarkExplicit(FlagModelsOutDir)
	}
	if env.IRsOutDir != "" {
		s.IRsOutDir = env.IRsOutDir
		s.MarkExplicit(FlagIRsOutDir)
	}
	if env.CacheDir != "" {
		s.CacheDir = env.CacheDir
		s.MarkExplicit(FlagCacheDir)
	}
	if env.NoVenv != nil {
		s.NoVenv = *env.NoVenv
	}
	if env.Python != "" {
		s.Python = env.Python
	}
	return nil
}
