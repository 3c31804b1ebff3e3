package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/usecase"
)

// newLegendCommand creates the legend command.
func newLegendCommand(c *app.Container) *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Show the status legend",
		Long: `Show the statuses present in the filtered collection with their counts.

The legend ignores the status filter when deciding which entries exist.
The active entry is marked with '*'. A status filter that matches no
present entry falls back to All.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, _, err := loadView(cmd, c, &flags)
			if err != nil {
				return err
			}
			printLegend(cmd.OutOrStdout(), view)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func printLegend(w io.Writer, view *usecase.BuildViewOutput) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	total := 0
	for _, n := range view.StatusCounts {
		total += n
	}

	_, _ = fmt.Fprintln(tw, " \tKEY\tSTATUS\tCOLOR\tCOUNT")
	_, _ = fmt.Fprintf(tw, "%s\t0\tAll\t-\t%d\n", activeMark(view.Legend.IsActive(domain.FilterAll)), total)
	for i, e := range view.Legend.Entries {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n",
			activeMark(view.Legend.IsActive(string(e.Class))),
			i+1,
			e.Label,
			e.Color,
			view.StatusCounts[e.Class],
		)
	}
}

func activeMark(active bool) string {
	if active {
		return "*"
	}
	return " "
}
