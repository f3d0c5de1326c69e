// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"macdev-cli/internal/dispatch"

	"github.com/spf13/cobra"
)

// planCmd resolves and prints the execution plan without running it.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what run would do, without running it",
	Long: `Resolve the execution branch, the environment transforms, and the
delegated command line from the current environment and configuration,
then print them one step per line. Nothing is executed, so the plan for
the develop-test branch is shown even when the virtualenv is missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		plan, err := d.Plan()
		if err != nil {
			return err
		}
		printPlan(cmd, plan)
		return nil
	},
}

// printPlan renders a resolved plan, one styled line per step.
func printPlan(cmd *cobra.Command, plan *dispatch.Plan) {
	lines := plan.Describe()
	cmd.Println(SubtitleStyle.Render(lines[0]))
	for _, line := range lines[1:] {
		cmd.Println(CmdStyle.Render("  " + line))
	}
}
