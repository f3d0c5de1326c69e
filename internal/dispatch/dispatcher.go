// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"macdev-cli/internal/activate"
	"macdev-cli/internal/config"
	"macdev-cli/internal/environ"
	"macdev-cli/internal/execrun"
	"macdev-cli/pkg/platform"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/shell"
)

type (
	// Dispatcher resolves the execution plan from platform identity and
	// environment configuration, then runs it to completion: transforms
	// first, then exactly one collaborator command. Fail-fast is
	// absolute: the first non-zero step terminates the run with that
	// step's exit code, and later steps never execute.
	Dispatcher struct {
		cfg    *config.Config
		env    environ.Snapshot
		goos   string
		runner execrun.Runner
		logger *log.Logger
	}

	// Options defines the injection points for building a Dispatcher.
	// Nil or zero fields are replaced with production defaults by New.
	// Tests supply a fake Runner and a fixed environment/GOOS.
	Options struct {
		Config *config.Config
		Env    *environ.Snapshot
		GOOS   string
		Runner execrun.Runner
		Logger *log.Logger
	}
)

// New creates a Dispatcher with defaults for omitted options.
func New(opts Options) (*Dispatcher, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("dispatcher requires a config")
	}

	env := environ.Host()
	if opts.Env != nil {
		env = *opts.Env
	}
	goos := opts.GOOS
	if goos == "" {
		goos = platform.HostOS()
	}
	runner := opts.Runner
	if runner == nil {
		runner = execrun.NewRunner()
	}
	logger := opts.Logger
	if logger == nil {
		// The execution trace is always on; it goes to stderr so it
		// never mixes with collaborator stdout.
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "macdev"})
	}

	return &Dispatcher{
		cfg:    opts.Config,
		env:    env,
		goos:   goos,
		runner: runner,
		logger: logger,
	}, nil
}

// Plan resolves the execution plan without running anything. All
// configuration values are read once here; the plan is immutable
// afterwards.
func (d *Dispatcher) Plan() (*Plan, error) {
	profile := Profile(d.env.Get(EnvProfile))
	branch := profile.Branch()

	plan := &Plan{
		GOOS:    d.goos,
		Profile: profile,
		Branch:  branch,
	}

	// The version-manager init step precedes branch logic on Darwin,
	// regardless of the selected profile.
	if platform.IsDarwin(d.goos) && !d.cfg.VersionManager.Disabled {
		plan.Transforms = append(plan.Transforms, &activate.VersionManagerInit{
			Command: d.cfg.VersionManager.Command.String(),
			Args:    d.cfg.VersionManager.Args,
			Runner:  d.runner,
		})
	}

	switch branch {
	case BranchSystemBuild:
		plan.Command = execrun.CommandSpec{
			Path: d.cfg.Build.Command.String(),
			Args: d.cfg.Build.Args,
		}
	case BranchDevelopTest:
		plan.Transforms = append(plan.Transforms, &activate.VenvActivate{
			Dir:  d.cfg.Venv.Dir.String(),
			GOOS: d.goos,
		})

		args, err := d.runnerArgs()
		if err != nil {
			return nil, err
		}
		plan.Command = execrun.CommandSpec{
			Path: d.cfg.Test.Runner.String(),
			Args: args,
		}
	}

	return plan, nil
}

// runnerArgs assembles the develop-test runner arguments: the fixed
// develop-mode flag, the target environment, then the pass-through
// flags after "--". Pieces with empty sources are omitted, matching
// unquoted shell expansion of unset variables.
func (d *Dispatcher) runnerArgs() ([]string, error) {
	var args []string

	if d.cfg.Test.DevelopFlag != "" {
		args = append(args, d.cfg.Test.DevelopFlag)
	}

	if target := d.env.Get(EnvToxTarget); target != "" {
		args = append(args, "-e", target)
	}

	flags, err := shell.Fields(d.env.Get(EnvToxFlags), d.env.Get)
	if err != nil {
		return nil, fmt.Errorf("failed to split %s: %w", EnvToxFlags, err)
	}
	if len(flags) > 0 {
		args = append(args, "--")
		args = append(args, flags...)
	}

	return args, nil
}

// Run executes the resolved plan and returns the exit code of the first
// failing step, or the delegated command's exit code. A non-zero code
// with a nil error means a step ran to completion and failed; the error
// is reserved for steps that could not run at all.
func (d *Dispatcher) Run(ctx context.Context) (execrun.ExitCode, error) {
	plan, err := d.Plan()
	if err != nil {
		return 1, err
	}

	env := d.env
	for _, tr := range plan.Transforms {
		d.traceTransform(tr)

		next, err := tr.Apply(ctx, env)
		if err != nil {
			return stepExitCode(err), err
		}

		if d.cfg.UI.Verbose {
			d.traceEnvChanges(env, next, tr.Name())
		}
		env = next
	}

	spec := plan.Command
	spec.Env = env

	d.logger.Info("exec", "step", plan.Branch.String(), "argv", strings.Join(spec.Argv(), " "))

	result := d.runner.Run(ctx, spec)
	if result.Error != nil {
		return result.ExitCode, fmt.Errorf("%s: %w", plan.Branch, result.Error)
	}

	return result.ExitCode, nil
}

func (d *Dispatcher) traceTransform(tr activate.Transform) {
	if ap, ok := tr.(argvProvider); ok {
		d.logger.Info("apply", "step", tr.Name(), "argv", strings.Join(ap.Argv(), " "))
		return
	}
	d.logger.Info("apply", "step", tr.Name())
}

// traceEnvChanges logs the variables a transform added or changed.
// Values are withheld; init output may carry credentials.
func (d *Dispatcher) traceEnvChanges(before, after environ.Snapshot, step string) {
	var changed []string
	for _, name := range after.Names() {
		if v, ok := before.Lookup(name); !ok || v != after.Get(name) {
			changed = append(changed, name)
		}
	}
	for _, name := range before.Names() {
		if _, ok := after.Lookup(name); !ok {
			changed = append(changed, name+" (unset)")
		}
	}
	if len(changed) > 0 {
		d.logger.Debug("env", "step", step, "changed", strings.Join(changed, ","))
	}
}

// stepExitCode extracts the exit code to propagate from a failed step.
// Steps whose underlying command exited non-zero carry that code; every
// other failure maps to 1.
func stepExitCode(err error) execrun.ExitCode {
	var cmdErr *activate.CommandFailedError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	return 1
}
