// SPDX-License-Identifier: MPL-2.0

package activate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"macdev-cli/internal/environ"
	"macdev-cli/pkg/platform"
)

// ErrVenvNotFound is the sentinel error wrapped by VenvNotFoundError.
var ErrVenvNotFound = errors.New("virtualenv not found")

type (
	// VenvActivate reproduces what a virtualenv activate script does to
	// the environment: set VIRTUAL_ENV, prepend the venv's executable
	// directory to PATH, and drop PYTHONHOME. It runs no external
	// command; the transform is pure over the snapshot.
	VenvActivate struct {
		// Dir is the virtualenv directory, relative to the working directory.
		Dir string
		// GOOS selects the executable subdirectory layout ("Scripts" on
		// Windows, "bin" elsewhere). Empty means the host GOOS.
		GOOS string
	}

	// VenvNotFoundError is returned when the virtualenv directory does
	// not exist or has no executable subdirectory.
	VenvNotFoundError struct {
		Dir string
	}
)

// Error implements the error interface for VenvNotFoundError.
func (e *VenvNotFoundError) Error() string {
	return fmt.Sprintf("virtualenv %q not found or incomplete", e.Dir)
}

// Unwrap returns ErrVenvNotFound for errors.Is() compatibility.
func (e *VenvNotFoundError) Unwrap() error { return ErrVenvNotFound }

// Name returns the transform name used in traces and plans.
func (t *VenvActivate) Name() string { return "venv-activate" }

// Apply returns a snapshot with the virtualenv activated. Activation
// failure (missing venv) aborts the run before the test runner starts.
func (t *VenvActivate) Apply(_ context.Context, env environ.Snapshot) (environ.Snapshot, error) {
	venvPath, err := filepath.Abs(t.Dir)
	if err != nil {
		return env, fmt.Errorf("failed to resolve venv path: %w", err)
	}

	binDir := filepath.Join(venvPath, t.binDirName())
	info, err := os.Stat(binDir)
	if err != nil || !info.IsDir() {
		return env, &VenvNotFoundError{Dir: t.Dir}
	}

	out := env.With("VIRTUAL_ENV", venvPath)

	path := out.Get("PATH")
	if path != "" {
		path = binDir + string(os.PathListSeparator) + path
	} else {
		path = binDir
	}
	out = out.With("PATH", path)

	// PYTHONHOME would override the venv's interpreter prefix.
	out = out.Without("PYTHONHOME")

	return out, nil
}

func (t *VenvActivate) binDirName() string {
	goos := t.GOOS
	if goos == "" {
		goos = platform.HostOS()
	}
	if goos == platform.Windows {
		return "Scripts"
	}
	return "bin"
}
