// SPDX-License-Identifier: MPL-2.0

package activate

import (
	"errors"
	"fmt"
	"strings"

	"macdev-cli/internal/environ"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrUnsupportedEvalStatement is the sentinel error wrapped by UnsupportedEvalStatementError.
var ErrUnsupportedEvalStatement = errors.New("unsupported eval statement")

// UnsupportedEvalStatementError is returned when version-manager init
// output contains anything other than assignments and exports. The
// dispatcher only executes its two declared delegation points; arbitrary
// commands in eval output are rejected, not run.
type UnsupportedEvalStatementError struct {
	Line     uint
	Fragment string
}

// Error implements the error interface for UnsupportedEvalStatementError.
func (e *UnsupportedEvalStatementError) Error() string {
	return fmt.Sprintf("line %d: unsupported eval statement %q (only assignments and exports are applied)", e.Line, e.Fragment)
}

// Unwrap returns ErrUnsupportedEvalStatement for errors.Is() compatibility.
func (e *UnsupportedEvalStatementError) Unwrap() error { return ErrUnsupportedEvalStatement }

// ApplyEvalOutput parses shell-evaluable output (the kind produced by
// `pyenv init -`) and applies its variable assignments and exports to a
// copy of env. Values are expanded against the evolving snapshot, so
// `PATH="$HOME/.pyenv/shims:$PATH"` composes the way `eval` would.
//
// Statements other than plain assignments and `export` declarations
// (function definitions, command calls, command substitution) yield an
// UnsupportedEvalStatementError.
func ApplyEvalOutput(output string, env environ.Snapshot) (environ.Snapshot, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(output), "eval")
	if err != nil {
		return env, fmt.Errorf("failed to parse eval output: %w", err)
	}

	out := env
	for _, stmt := range file.Stmts {
		switch cmd := stmt.Cmd.(type) {
		case *syntax.CallExpr:
			// A bare `KEY=value` parses as a CallExpr with assignments
			// and no arguments. Arguments mean a real command call.
			if len(cmd.Args) > 0 {
				return env, unsupportedStatement(stmt)
			}
			for _, assign := range cmd.Assigns {
				out, err = applyAssign(out, assign)
				if err != nil {
					return env, err
				}
			}
		case *syntax.DeclClause:
			if cmd.Variant == nil || cmd.Variant.Value != "export" {
				return env, unsupportedStatement(stmt)
			}
			for _, assign := range cmd.Args {
				out, err = applyAssign(out, assign)
				if err != nil {
					return env, err
				}
			}
		default:
			return env, unsupportedStatement(stmt)
		}
	}

	return out, nil
}

// applyAssign expands one assignment's value against the current
// snapshot and returns the snapshot with it applied. `export KEY`
// without a value is a no-op in the flat snapshot model.
func applyAssign(env environ.Snapshot, assign *syntax.Assign) (environ.Snapshot, error) {
	if assign.Name == nil {
		return env, fmt.Errorf("eval assignment has no variable name")
	}
	name := assign.Name.Value

	if assign.Value == nil {
		return env, nil
	}

	value, err := expandWord(env, assign.Value)
	if err != nil {
		return env, fmt.Errorf("failed to expand value for %s: %w", name, err)
	}

	if assign.Append {
		value = env.Get(name) + value
	}

	return env.With(name, value), nil
}

// expandWord expands a shell word using the snapshot for variable
// lookups. No CmdSubst handler is configured, so command substitution
// in eval output surfaces as an expansion error.
func expandWord(env environ.Snapshot, word *syntax.Word) (string, error) {
	cfg := &expand.Config{
		Env: expand.FuncEnviron(env.Get),
	}
	return expand.Literal(cfg, word)
}

func unsupportedStatement(stmt *syntax.Stmt) error {
	var sb strings.Builder
	printer := syntax.NewPrinter()
	_ = printer.Print(&sb, stmt.Cmd)

	return &UnsupportedEvalStatementError{
		Line:     stmt.Pos().Line(),
		Fragment: strings.TrimSpace(sb.String()),
	}
}
