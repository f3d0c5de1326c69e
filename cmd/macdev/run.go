// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"macdev-cli/internal/config"
	"macdev-cli/internal/dispatch"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// dryRun resolves the plan without executing it
	dryRun bool

	// runCmd dispatches the selected execution branch.
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Dispatch to the build or test workflow",
		Long: `Select the execution branch from ` + CmdStyle.Render("MACAPP_ENV") + ` and delegate to it.

The profile "system" builds the app; any other value (or none) activates
the virtualenv and runs the test runner in develop mode, honoring
TOX_ENV and TOX_FLAGS. The delegated command's exit code becomes the
exit code of macdev.`,
		Args: cobra.NoArgs,
		RunE: runDispatch,
	}
)

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve the plan and print it without executing")
}

func runDispatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadDispatchConfig(cmd.Context())
	if err != nil {
		return err
	}

	d, err := dispatch.New(dispatch.Options{
		Config: cfg,
		Logger: newTraceLogger(),
	})
	if err != nil {
		return err
	}

	if dryRun {
		plan, err := d.Plan()
		if err != nil {
			return err
		}
		printPlan(cmd, plan)
		return nil
	}

	code, err := d.Run(cmd.Context())
	if err != nil {
		return &ExitError{Code: code, Err: err}
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

// loadDispatchConfig loads the effective configuration for dispatching.
// An explicit --config path that fails to load is fatal; a broken or
// missing default-path config falls back to defaults with a warning.
func loadDispatchConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		if cfgFile != "" {
			return nil, err
		}
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}

	// The --verbose flag wins over the config file.
	if verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// newTraceLogger builds the stderr execution-trace logger. The trace is
// always on; verbose mode adds per-transform environment diffs.
func newTraceLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "macdev"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
