// SPDX-License-Identifier: MPL-2.0

package activate

import (
	"context"
	"fmt"
	"strings"

	"macdev-cli/internal/environ"
	"macdev-cli/internal/execrun"
)

// VersionManagerInit runs the interpreter-version-manager init command
// (e.g., `pyenv init -`), captures its stdout, and evaluates the output
// into the environment snapshot. It is applied on Darwin hosts before
// any branch logic.
type VersionManagerInit struct {
	// Command is the version-manager executable.
	Command string
	// Args are the arguments producing shell-evaluable output.
	Args []string
	// Runner executes the init command.
	Runner execrun.Runner
}

// Name returns the transform name used in traces and plans.
func (t *VersionManagerInit) Name() string { return "version-manager-init" }

// Argv returns the init command line for traces and dry-run rendering.
func (t *VersionManagerInit) Argv() []string {
	return append([]string{t.Command}, t.Args...)
}

// Apply runs the init command against the given snapshot and returns
// the snapshot with its eval output applied. A non-zero init exit is a
// CommandFailedError carrying that code; the whole run aborts with it.
func (t *VersionManagerInit) Apply(ctx context.Context, env environ.Snapshot) (environ.Snapshot, error) {
	if t.Runner == nil {
		return env, fmt.Errorf("version-manager init has no runner")
	}

	result := t.Runner.RunCapture(ctx, execrun.CommandSpec{
		Path: t.Command,
		Args: t.Args,
		Env:  env,
	})
	if result.Error != nil {
		return env, fmt.Errorf("failed to run version-manager init: %w", result.Error)
	}
	if !result.ExitCode.IsSuccess() {
		return env, &CommandFailedError{
			Step:   t.Name(),
			Code:   result.ExitCode,
			Detail: strings.TrimSpace(result.ErrOutput),
		}
	}

	out, err := ApplyEvalOutput(result.Output, env)
	if err != nil {
		return env, fmt.Errorf("failed to apply version-manager init output: %w", err)
	}
	return out, nil
}
