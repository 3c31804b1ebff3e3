package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/usecase"
)

// newSnapshotCommand creates the snapshot command.
func newSnapshotCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save records to a local file",
		Long: `Copy tasks and projects from the configured source into a JSON file.

The file can be used offline with [source] kind = "file", or served to
other clients with 'gantt serve'. Existing contents are replaced.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SnapshotRecordsUseCase(output).Execute(cmd.Context(), usecase.SnapshotRecordsInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d tasks and %d projects to %s\n",
				out.Counts[domain.ModeTasks], out.Counts[domain.ModeProjects], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", domain.DefaultRecordsFile, "Snapshot file")
	return cmd
}
