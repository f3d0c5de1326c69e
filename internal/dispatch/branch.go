// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
)

// Environment variables consumed by the dispatcher.
const (
	// EnvProfile selects the execution profile; the value "system"
	// selects the system-build branch, anything else (including unset)
	// selects develop-test.
	EnvProfile = "MACAPP_ENV"
	// EnvToxTarget names the target test environment passed to the runner.
	EnvToxTarget = "TOX_ENV"
	// EnvToxFlags carries extra runner arguments, shell-word split.
	EnvToxFlags = "TOX_FLAGS"
)

// ProfileSystem is the sentinel profile value selecting the system-build branch.
const ProfileSystem Profile = "system"

// Branch values. Exactly one branch executes per invocation.
const (
	// BranchSystemBuild delegates to the build collaborator directly.
	BranchSystemBuild Branch = "system-build"
	// BranchDevelopTest activates the virtualenv and runs the test runner.
	BranchDevelopTest Branch = "develop-test"
)

// ErrInvalidBranch is the sentinel error wrapped by InvalidBranchError.
var ErrInvalidBranch = errors.New("invalid branch")

type (
	// Profile is the environment-selected execution profile. Any string
	// is a valid profile; only ProfileSystem changes the branch.
	Profile string

	// Branch is one of the two mutually exclusive execution paths.
	Branch string

	// InvalidBranchError is returned when a Branch value is not recognized.
	// It wraps ErrInvalidBranch for errors.Is() compatibility.
	InvalidBranchError struct {
		Value Branch
	}
)

// String returns the string representation of the Profile.
func (p Profile) String() string { return string(p) }

// Branch maps the profile onto its execution branch: the sentinel
// "system" selects system-build, every other value develop-test.
func (p Profile) Branch() Branch {
	if p == ProfileSystem {
		return BranchSystemBuild
	}
	return BranchDevelopTest
}

// String returns the string representation of the Branch.
func (b Branch) String() string { return string(b) }

// IsValid returns whether the Branch is one of the defined branches,
// and a list of validation errors if it is not.
func (b Branch) IsValid() (bool, []error) {
	switch b {
	case BranchSystemBuild, BranchDevelopTest:
		return true, nil
	default:
		return false, []error{&InvalidBranchError{Value: b}}
	}
}

// Error implements the error interface for InvalidBranchError.
func (e *InvalidBranchError) Error() string {
	return fmt.Sprintf("invalid branch %q (valid: system-build, develop-test)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidBranchError) Unwrap() error { return ErrInvalidBranch }
