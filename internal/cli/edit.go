package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/usecase"
)

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Mode  string
		Start string
		End   string
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the dates of a record",
		Long: `Change the editable date pair of one record.

In tasks mode the real start and the deadline are written.
In projects mode the planned start and end are written.
Dates use the YYYY-MM-DD form and the start may not be after the end.
Both flags are required; pass an empty value to clear that date.

Examples:
  gantt edit 42 --start 2024-03-01 --end 2024-03-15
  gantt edit 42 --start "" --end 2024-03-15
  gantt edit P-7 --mode projects --start 2024-01-01 --end 2024-06-30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := c.Config.InitialViewState().Mode
			if opts.Mode != "" {
				mode = domain.ParseMode(opts.Mode)
			}

			out, err := c.UpdateDatesUseCase().Execute(cmd.Context(), usecase.UpdateDatesInput{
				ID:        args[0],
				Mode:      mode,
				StartDate: opts.Start,
				EndDate:   opts.End,
				ReadOnly:  c.Config.View.ReadOnly,
			})
			if err != nil {
				if errors.Is(err, domain.ErrReadOnly) {
					return fmt.Errorf("%w: set [view] read_only = false to allow edits", err)
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s: %s to %s\n",
				mode.Display(), args[0], shownDate(out.StartDate), shownDate(out.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Collection of the record: tasks or projects")
	cmd.Flags().StringVar(&opts.Start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.End, "end", "", "New end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func shownDate(s string) string {
	if s == "" {
		return "(cleared)"
	}
	return s
}
