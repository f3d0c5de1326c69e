// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCommandPath is returned when a CommandPath value is empty or whitespace-only.
	ErrInvalidCommandPath = errors.New("invalid command path")
	// ErrInvalidVenvDir is returned when a VenvDir value is whitespace-only.
	ErrInvalidVenvDir = errors.New("invalid venv dir")
	// ErrInvalidBuildConfig is the sentinel error wrapped by InvalidBuildConfigError.
	ErrInvalidBuildConfig = errors.New("invalid build config")
	// ErrInvalidTestConfig is the sentinel error wrapped by InvalidTestConfigError.
	ErrInvalidTestConfig = errors.New("invalid test config")
	// ErrInvalidVersionManagerConfig is the sentinel error wrapped by InvalidVersionManagerConfigError.
	ErrInvalidVersionManagerConfig = errors.New("invalid version-manager config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// CommandPath is the name or path of an external collaborator
	// executable. A valid value is non-empty and not whitespace-only;
	// relative names resolve through PATH at spawn time.
	CommandPath string

	// InvalidCommandPathError is returned when a CommandPath value is
	// empty or whitespace-only. It wraps ErrInvalidCommandPath for errors.Is().
	InvalidCommandPathError struct {
		Value CommandPath
	}

	// VenvDir is the virtualenv directory used by the develop-test branch.
	// The zero value ("") is invalid; the default is ".venv".
	VenvDir string

	// InvalidVenvDirError is returned when a VenvDir value is empty or
	// whitespace-only. It wraps ErrInvalidVenvDir for errors.Is().
	InvalidVenvDirError struct {
		Value VenvDir
	}

	// InvalidBuildConfigError collects field errors from a BuildConfig.
	InvalidBuildConfigError struct {
		FieldErrors []error
	}

	// InvalidTestConfigError collects field errors from a TestConfig.
	InvalidTestConfigError struct {
		FieldErrors []error
	}

	// InvalidVersionManagerConfigError collects field errors from a VersionManagerConfig.
	InvalidVersionManagerConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// BuildConfig describes the system-build collaborator.
	BuildConfig struct {
		// Command is the build executable invoked by the system profile.
		Command CommandPath `json:"command" mapstructure:"command"`
		// Args are extra arguments for the build executable (default: none).
		Args []string `json:"args" mapstructure:"args"`
	}

	// TestConfig describes the develop-test collaborator.
	TestConfig struct {
		// Runner is the test-runner executable.
		Runner CommandPath `json:"runner" mapstructure:"runner"`
		// DevelopFlag is the fixed develop-mode flag passed to the runner.
		DevelopFlag string `json:"develop_flag" mapstructure:"develop_flag"`
	}

	// VenvConfig describes the virtualenv activated before the test runner.
	VenvConfig struct {
		// Dir is the virtualenv directory, relative to the working directory.
		Dir VenvDir `json:"dir" mapstructure:"dir"`
	}

	// VersionManagerConfig describes the Darwin interpreter-version-manager
	// init step. Its stdout is evaluated into the dispatch environment.
	VersionManagerConfig struct {
		// Command is the version-manager executable.
		Command CommandPath `json:"command" mapstructure:"command"`
		// Args are the arguments producing shell-evaluable init output.
		Args []string `json:"args" mapstructure:"args"`
		// Disabled skips the init step even on Darwin.
		Disabled bool `json:"disabled" mapstructure:"disabled"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config holds the application configuration.
	Config struct {
		// Build configures the system-build branch.
		Build BuildConfig `json:"build" mapstructure:"build"`
		// Test configures the develop-test branch.
		Test TestConfig `json:"test" mapstructure:"test"`
		// Venv configures virtualenv activation.
		Venv VenvConfig `json:"venv" mapstructure:"venv"`
		// VersionManager configures the Darwin init step.
		VersionManager VersionManagerConfig `json:"version_manager" mapstructure:"version_manager"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}
)

// String returns the string representation of the CommandPath.
func (p CommandPath) String() string { return string(p) }

// IsValid returns whether the CommandPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p CommandPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidCommandPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCommandPathError.
func (e *InvalidCommandPathError) Error() string {
	return fmt.Sprintf("invalid command path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidCommandPath for errors.Is() compatibility.
func (e *InvalidCommandPathError) Unwrap() error { return ErrInvalidCommandPath }

// String returns the string representation of the VenvDir.
func (d VenvDir) String() string { return string(d) }

// IsValid returns whether the VenvDir is valid.
// A valid dir must be non-empty and not whitespace-only.
func (d VenvDir) IsValid() (bool, []error) {
	if strings.TrimSpace(string(d)) == "" {
		return false, []error{&InvalidVenvDirError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVenvDirError.
func (e *InvalidVenvDirError) Error() string {
	return fmt.Sprintf("invalid venv dir %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidVenvDir for errors.Is() compatibility.
func (e *InvalidVenvDirError) Unwrap() error { return ErrInvalidVenvDir }

// IsValid returns whether the BuildConfig has valid fields.
func (c BuildConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Command.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidBuildConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBuildConfigError.
func (e *InvalidBuildConfigError) Error() string {
	return fmt.Sprintf("invalid build config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidBuildConfig for errors.Is() compatibility.
func (e *InvalidBuildConfigError) Unwrap() error { return ErrInvalidBuildConfig }

// IsValid returns whether the TestConfig has valid fields. The develop
// flag may be empty (meaning "pass no develop-mode flag").
func (c TestConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Runner.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidTestConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTestConfigError.
func (e *InvalidTestConfigError) Error() string {
	return fmt.Sprintf("invalid test config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidTestConfig for errors.Is() compatibility.
func (e *InvalidTestConfigError) Unwrap() error { return ErrInvalidTestConfig }

// IsValid returns whether the VersionManagerConfig has valid fields.
// Command validity is only required when the step is enabled.
func (c VersionManagerConfig) IsValid() (bool, []error) {
	if c.Disabled {
		return true, nil
	}
	var errs []error
	if valid, fieldErrs := c.Command.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidVersionManagerConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidVersionManagerConfigError.
func (e *InvalidVersionManagerConfigError) Error() string {
	return fmt.Sprintf("invalid version-manager config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidVersionManagerConfig for errors.Is() compatibility.
func (e *InvalidVersionManagerConfigError) Unwrap() error { return ErrInvalidVersionManagerConfig }

// IsValid returns whether the Config has valid fields. It delegates to
// Build, Test, Venv, and VersionManager; UI has only bool fields and
// needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Build.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Test.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Venv.Dir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.VersionManager.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Build: BuildConfig{
			Command: "./build-app.sh",
			Args:    []string{},
		},
		Test: TestConfig{
			Runner:      "tox",
			DevelopFlag: "--develop",
		},
		Venv: VenvConfig{
			Dir: ".venv",
		},
		VersionManager: VersionManagerConfig{
			Command:  "pyenv",
			Args:     []string{"init", "-"},
			Disabled: false,
		},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
