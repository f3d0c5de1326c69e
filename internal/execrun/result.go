// SPDX-License-Identifier: MPL-2.0

package execrun

type (
	// Result contains the outcome of one delegated command.
	Result struct {
		// ExitCode is the exit code of the command.
		ExitCode ExitCode
		// Error contains any infrastructure failure (spawn error, bad spec).
		// A non-zero ExitCode from a process that ran to completion is not
		// an Error; the distinction keeps "child failed" separate from
		// "child never ran".
		Error error
		// Output contains captured stdout (capture mode only).
		Output string
		// ErrOutput contains captured stderr (capture mode only).
		ErrOutput string
	}
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}
