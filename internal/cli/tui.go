package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// Running gantt without arguments does the same.
func newTUICommand(c *app.Container) *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive timeline. Flags set the initial view.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state(c)
			if err != nil {
				return err
			}
			return launchTUIFunc(cmd.Context(), c, state)
		},
	}

	flags.register(cmd)
	return cmd
}
