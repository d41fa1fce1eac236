// Package model defines the domain types shared across the get-testdata CLI.
//
// The tool itself holds almost no state: every meaningful unit of work
// (cloning the model zoo, downloading models, installing the virtual
// environment, converting models to IRs) is delegated to an external
// command. What remains here is the error model that carries subprocess
// exit codes up to the CLI layer, plus the identifiers of the pipeline
// steps used in logging and error messages.
package model

import (
	"fmt"
)

// Step identifies one stage of the acquisition pipeline. Steps run strictly
// in sequence; the first failing step aborts the run.
type Step string

const (
	// StepRepo clones (or reuses) the Open Model Zoo checkout.
	StepRepo Step = "prepare-repo"

	// StepDownload runs the model zoo downloader against the fixed model set.
	StepDownload Step = "download-models"

	// StepVenv creates the virtual environment and installs the
	// requirement manifests. Skipped entirely with --no_venv.
	StepVenv Step = "prepare-venv"

	// StepConvert runs the model zoo converter to produce IR files.
	StepConvert Step = "convert-models"
)

// String returns the step name. Satisfies fmt.Stringer for log output.
func (s Step) String() string {
	return string(s)
}

// ExitCode defines the process exit codes of the CLI.
//
// On any subprocess failure the tool exits with that subprocess's own exit
// code, so most codes observed in practice originate outside this table.
// The constants below cover the failures the tool itself can produce.
type ExitCode int

const (
	// ExitSuccess indicates all pipeline steps completed.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred before any
	// subprocess ran (bad flags, unresolvable paths, unreadable config file).
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate failures, including the raw exit
// status of a failed shelled-out command, into the process exit code.
type CLIError struct {
	// Code is the exit code to return to the OS. For subprocess failures
	// this is the subprocess's own exit status, propagated unchanged.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
