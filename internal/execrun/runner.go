// SPDX-License-Identifier: MPL-2.0

// Package execrun runs external collaborator commands and maps their exit
// status into Results. It is the only place in the codebase that spawns
// processes.
package execrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"macdev-cli/internal/environ"
)

type (
	// CommandSpec describes one external command invocation. The command
	// runs with exactly the environment in Env; nothing is inherited
	// implicitly.
	CommandSpec struct {
		// Path is the executable to run, resolved via PATH when relative.
		Path string
		// Args are the arguments passed to the executable.
		Args []string
		// Dir is the working directory; empty means the caller's cwd.
		Dir string
		// Env is the full environment for the child process.
		Env environ.Snapshot

		// Stdin/Stdout/Stderr override the inherited standard streams.
		// Nil fields default to the calling process's streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner executes commands. The interface exists so the dispatcher can
	// be tested with a recording fake instead of real processes.
	Runner interface {
		// Run executes the command with inherited (or overridden) stdio,
		// blocking until it exits.
		Run(ctx context.Context, spec CommandSpec) *Result
		// RunCapture executes the command and captures stdout/stderr.
		RunCapture(ctx context.Context, spec CommandSpec) *Result
	}

	execRunner struct{}
)

// NewRunner creates a Runner backed by os/exec.
func NewRunner() Runner {
	return &execRunner{}
}

// Validate checks that the spec names an executable.
func (s CommandSpec) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("command spec has no executable path")
	}
	return nil
}

// Argv returns the full command line (path followed by args), for traces
// and dry-run rendering.
func (s CommandSpec) Argv() []string {
	return append([]string{s.Path}, s.Args...)
}

func (r *execRunner) Run(ctx context.Context, spec CommandSpec) *Result {
	if err := spec.Validate(); err != nil {
		return NewErrorResult(1, err)
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env.Slice()

	cmd.Stdin = spec.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = spec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute command: %w", err))
	}

	return NewSuccessResult()
}

func (r *execRunner) RunCapture(ctx context.Context, spec CommandSpec) *Result {
	if err := spec.Validate(); err != nil {
		return NewErrorResult(1, err)
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env.Slice()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("failed to execute command: %w", err)
		}
	}

	return result
}
