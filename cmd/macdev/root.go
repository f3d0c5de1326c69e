// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for macdev.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"macdev-cli/internal/config"
	"macdev-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "macdev",
		Short: "An environment-dispatch runner for the app workflow",
		Long: TitleStyle.Render("macdev") + SubtitleStyle.Render(" - an environment-dispatch runner") + `

macdev selects an execution profile from the environment and delegates
to exactly one external command with a transformed environment:

  MACAPP_ENV=system   build the app (system-build branch)
  anything else       activate the virtualenv and run the test runner
                      (develop-test branch)

On Darwin hosts the interpreter version manager is initialized first,
regardless of the selected profile. Any failing step terminates the run
immediately with that step's exit code.

` + SubtitleStyle.Render("Examples:") + `
  macdev run                     Dispatch based on the current environment
  macdev plan                    Show what would run, without running it
  MACAPP_ENV=system macdev run   Build the app
  TOX_ENV=py311 macdev run       Test against the py311 environment`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is platform config dir)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig applies config-file settings that affect global flags.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		// Surface config loading problems, but keep running on defaults;
		// run/plan re-load and enforce their own failure policy.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
