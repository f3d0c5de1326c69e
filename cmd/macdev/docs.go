// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideMarkdown string

// newDocsCommand creates the `macdev docs` command, which renders the
// built-in usage guide to the terminal.
func newDocsCommand() *cobra.Command {
	var plain bool

	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Show the built-in usage guide",
		Long:  "Render the built-in usage guide, covering profiles, branches, and configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if plain {
				cmd.Print(guideMarkdown)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return fmt.Errorf("failed to build renderer: %w", err)
			}

			out, err := renderer.Render(guideMarkdown)
			if err != nil {
				return fmt.Errorf("failed to render guide: %w", err)
			}
			cmd.Print(out)
			return nil
		},
	}

	docsCmd.Flags().BoolVar(&plain, "plain", false, "print the raw markdown without rendering")
	return docsCmd
}
