// Package venv manages the throwaway Python virtual environment used to
// run the Open Model Zoo converter with pinned dependencies.
package venv

import (
	"context"
	"fmt"
	"strings"

	"github.com/omz-tools/get-testdata/internal/config"
)

// Runner executes a composed shell command. Satisfied by shell.Runner;
// tests substitute a recording implementation.
type Runner interface {
	Run(ctx context.Context, cmdline string) error
}

// VirtualEnv identifies a virtual environment directory and the
// interpreter inside it. The interpreter path layout (bin/ vs Scripts/)
// is selected once at construction for the target platform.
//
// The environment exists only for the duration of a pipeline run; nothing
// here removes it afterwards, and a failed run can leave a partial
// environment on disk.
type VirtualEnv struct {
	dir     string
	python  string
	ambient string
	runner  Runner

	// created guards the implicit Create inside InstallRequirements.
	// Calling Create directly always re-creates.
	created bool
}

// New returns a VirtualEnv rooted at dir. ambientPython is the
// interpreter used to create the environment.
func New(dir, ambientPython string, runner Runner) *VirtualEnv {
	return &VirtualEnv{
		dir:     dir,
		python:  config.VenvPython(dir),
		ambient: ambientPython,
		runner:  runner,
	}
}

// Dir returns the virtual environment root directory.
func (v *VirtualEnv) Dir() string {
	return v.dir
}

// Python returns the path to the interpreter inside the environment.
func (v *VirtualEnv) Python() string {
	return v.python
}

// Create creates the virtual environment with the ambient interpreter's
// built-in venv module. An existing environment at the same path is
// re-created in place; venv tolerates a pre-existing directory.
func (v *VirtualEnv) Create(ctx context.Context) error {
	cmd := fmt.Sprintf("%s -m venv %s", v.ambient, v.dir)
	if err := v.runner.Run(ctx, cmd); err != nil {
		return err
	}
	v.created = true
	return nil
}

// InstallRequirements installs the given requirement manifests into the
// environment, creating it first if Create has not run yet. pip itself is
// upgraded before the manifests are installed, in the same shell command,
// so a pip failure aborts before any manifest is touched.
func (v *VirtualEnv) InstallRequirements(ctx context.Context, manifests ...string) error {
	if !v.created {
		if err := v.Create(ctx); err != nil {
			return err
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s -m pip install --upgrade pip", v.python)
	fmt.Fprintf(&b, " && %s -m pip install", v.python)
	for _, m := range manifests {
		fmt.Fprintf(&b, " -r %s", m)
	}
	return v.runner.Run(ctx, b.String())
}

// CreateAndInstall creates the environment and installs the given
// requirement manifests in it.
func (v *VirtualEnv) CreateAndInstall(ctx context.Context, manifests ...string) error {
	if err := v.Create(ctx); err != nil {
		return err
	}
	return v.InstallRequirements(ctx, manifests...)
}
