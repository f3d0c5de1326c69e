// SPDX-License-Identifier: MPL-2.0

// Package activate provides scoped environment transforms: steps that
// take an environment snapshot and return a new one, without touching
// the ambient process environment. The dispatcher composes transforms
// before delegating to a collaborator command.
package activate

import (
	"context"
	"errors"
	"fmt"

	"macdev-cli/internal/environ"
	"macdev-cli/internal/execrun"
)

// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
var ErrCommandFailed = errors.New("activation command failed")

type (
	// Transform is a scoped environment-mutation step. Apply must not
	// modify the input snapshot; it returns the transformed one.
	Transform interface {
		// Name identifies the transform in traces and plans.
		Name() string
		// Apply produces the transformed environment.
		Apply(ctx context.Context, env environ.Snapshot) (environ.Snapshot, error)
	}

	// CommandFailedError is returned when a transform's underlying
	// command exits non-zero. The dispatcher propagates Code as the
	// process exit status (fail-fast).
	CommandFailedError struct {
		Step   string
		Code   execrun.ExitCode
		Detail string
	}
)

// Error implements the error interface for CommandFailedError.
func (e *CommandFailedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed with exit code %s: %s", e.Step, e.Code, e.Detail)
	}
	return fmt.Sprintf("%s failed with exit code %s", e.Step, e.Code)
}

// Unwrap returns ErrCommandFailed for errors.Is() compatibility.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }
