package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSettings is the schema of the optional YAML config file passed via
// --config. Every key is optional; absent keys leave the previous
// configuration layer untouched.
//
// Example:
//
//	omz_repo: /opt/open_model_zoo
//	omz_models_out_dir: /data/omz/models
//	omz_irs_out_dir: /data/omz/irs
//	omz_cache_dir: /data/omz/cache
//	no_venv: true
type fileSettings struct {
	OMZRepo      string `yaml:"omz_repo"`
	MOTool       string `yaml:"mo_tool"`
	ModelsOutDir string `yaml:"omz_models_out_dir"`
	IRsOutDir    string `yaml:"omz_irs_out_dir"`
	CacheDir     string `yaml:"omz_cache_dir"`
	NoVenv       *bool  `yaml:"no_venv"`
	Python       string `yaml:"python"`
}

// ApplyFile overlays settings from a YAML config file. Path values coming
// from the file count as user-supplied for path resolution purposes and
// resolve against the invocation working directory, so relative paths in
// a shared config file behave the same as relative paths on the command
// line.
func (s *Settings) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: cannot read config file: %w", err)
	}

	var file fileSettings
	// KnownFields rejects typos in the config file instead of silently
	// ignoring them.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return fmt.Errorf("config: cannot parse config file %s: %w", path, err)
	}

	if file.OMZRepo != "" {
		s.OMZRepo = file.OMZRepo
		s.MarkExplicit(FlagOMZRepo)
	}
	if file.MOTool != "" {
		s.MOTool = file.MOTool
		s.MarkExplicit(FlagMOTool)
	}
	if file.ModelsOutDir != "" {
		s.ModelsOutDir = file.ModelsOutDir
		s.MarkExplicit(FlagModelsOutDir)
	}
	if file.IRsOutDir != "" {
		s.IRsOutDir = file.IRsOutDir
		s.MarkExplicit(FlagIRsOutDir)
	}
	if file.CacheDir != "" {
		s.CacheDir = file.CacheDir
		s.MarkExplicit(FlagCacheDir)
	}
	if file.NoVenv != nil {
		s.NoVenv = *file.NoVenv
	}
	if file.Python != "" {
		s.Python = file.Python
	}
	return nil
}
