// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "load configuration"},
			want: "failed to load configuration",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "load configuration", Resource: "/etc/macdev/config.cue"},
			want: "failed to load configuration: /etc/macdev/config.cue",
		},
		{
			name: "operation, resource, and cause",
			err: &ActionableError{
				Operation: "run version-manager init",
				Resource:  "pyenv",
				Cause:     errors.New("executable not found"),
			},
			want: "failed to run version-manager init: pyenv: executable not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorContextBuilder(t *testing.T) {
	t.Parallel()

	cause := errors.New("file not found")
	err := NewErrorContext().
		WithOperation("load configuration").
		WithResource("config.cue").
		WithSuggestion("Run 'macdev config init' to create one").
		WithSuggestion("Pass --config to use a different file").
		Wrap(cause).
		BuildError()

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() did not produce an ActionableError: %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("built error does not unwrap to its cause")
	}
	if !ae.HasSuggestions() {
		t.Error("HasSuggestions() = false with two suggestions")
	}

	formatted := ae.Format(false)
	if !strings.Contains(formatted, "• Run 'macdev config init' to create one") {
		t.Errorf("Format() missing suggestion bullet:\n%s", formatted)
	}
	if strings.Contains(formatted, "Error chain") {
		t.Error("non-verbose Format() includes the error chain")
	}
}

func TestFormatVerboseShowsChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	wrapped := fmt.Errorf("failed to read file: %w", inner)
	ae := NewErrorContext().
		WithOperation("load configuration").
		Wrap(wrapped).
		Build()

	formatted := ae.Format(true)
	if !strings.Contains(formatted, "Error chain:") {
		t.Errorf("verbose Format() missing error chain:\n%s", formatted)
	}
	if !strings.Contains(formatted, "permission denied") {
		t.Errorf("verbose Format() missing root cause:\n%s", formatted)
	}
}

func TestBuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}

	cause := errors.New("boom")
	ae := WrapWithOperation(cause, "apply transform")
	if ae.Operation != "apply transform" {
		t.Errorf("Operation = %q", ae.Operation)
	}
	if !errors.Is(ae, cause) {
		t.Error("wrapped error does not unwrap to its cause")
	}
}
