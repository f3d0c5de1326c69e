// SPDX-License-Identifier: MPL-2.0

package execrun

import (
	"context"
	"reflect"
	"testing"
)

func TestCommandSpecValidate(t *testing.T) {
	t.Parallel()

	spec := CommandSpec{Path: "tox", Args: []string{"--develop"}}
	if err := spec.Validate(); err != nil {
		t.Errorf("Validate() on populated spec = %v, want nil", err)
	}

	empty := CommandSpec{}
	if err := empty.Validate(); err == nil {
		t.Error("Validate() on empty spec = nil, want error")
	}
}

func TestCommandSpecArgv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec CommandSpec
		want []string
	}{
		{
			name: "path only",
			spec: CommandSpec{Path: "./build-app.sh"},
			want: []string{"./build-app.sh"},
		},
		{
			name: "path with args",
			spec: CommandSpec{Path: "tox", Args: []string{"--develop", "-e", "py311"}},
			want: []string{"tox", "--develop", "-e", "py311"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.spec.Argv(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Argv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunRejectsEmptySpec(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	result := r.Run(context.Background(), CommandSpec{})
	if result.Error == nil {
		t.Fatal("Run() with empty spec returned no error")
	}
	if result.ExitCode != 1 {
		t.Errorf("Run() with empty spec exit code = %d, want 1", result.ExitCode)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	spec := CommandSpec{Path: "/nonexistent/definitely-not-a-command"}

	result := r.Run(context.Background(), spec)
	if result.Error == nil {
		t.Fatal("Run() with nonexistent command returned no error")
	}
	if result.ExitCode != 1 {
		t.Errorf("spawn failure exit code = %d, want 1", result.ExitCode)
	}
	if result.Success() {
		t.Error("Success() = true for spawn failure")
	}

	captured := r.RunCapture(context.Background(), spec)
	if captured.Error == nil {
		t.Fatal("RunCapture() with nonexistent command returned no error")
	}
	if captured.ExitCode != 1 {
		t.Errorf("capture spawn failure exit code = %d, want 1", captured.ExitCode)
	}
}

func TestResultConstructors(t *testing.T) {
	t.Parallel()

	if r := NewSuccessResult(); !r.Success() {
		t.Error("NewSuccessResult().Success() = false")
	}

	r := NewExitCodeResult(3)
	if r.Success() {
		t.Error("NewExitCodeResult(3).Success() = true")
	}
	if r.Error != nil {
		t.Errorf("NewExitCodeResult(3).Error = %v, want nil", r.Error)
	}
	if r.ExitCode != 3 {
		t.Errorf("NewExitCodeResult(3).ExitCode = %d, want 3", r.ExitCode)
	}
}
