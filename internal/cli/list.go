package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/usecase"
)

// emptyFilterMessage is shown when records exist but none pass the filters.
const emptyFilterMessage = "No items for this filter."

// Output formats of the list command.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// loadView fetches the collection selected by flags and builds its view.
func loadView(cmd *cobra.Command, c *app.Container, flags *viewFlags) (*usecase.BuildViewOutput, domain.ViewState, error) {
	state, err := flags.state(c)
	if err != nil {
		return nil, state, err
	}

	fetched, err := c.FetchRecordsUseCase().Execute(cmd.Context(), usecase.FetchRecordsInput{Mode: state.Mode})
	if err != nil {
		return nil, state, err
	}
	state.Mode = fetched.Mode

	view, err := c.BuildViewUseCase().Execute(cmd.Context(), usecase.BuildViewInput{
		Records: fetched.Records,
		State:   state,
	})
	if err != nil {
		return nil, state, err
	}
	return view, state, nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var flags viewFlags
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Long: `Display the records of one collection after filtering.

Output format is tab-separated with columns:
  ID, STATUS, START, END, DAYS, RESPONSIBLE, PROJECT, NAME

Dates are shown as DD/MM/YYYY. When the mode is projects, or a project
filter is set, the total duration of the listed records is printed last.

Examples:
  # List tasks
  gantt list

  # List projects as JSON
  gantt list --mode projects -o json

  # List late tasks of one project
  gantt list --project "Alpha" --status late`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, state, err := loadView(cmd, c, &flags)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case outputJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(view.Visible)
			case outputYAML:
				enc := yaml.NewEncoder(w)
				defer func() { _ = enc.Close() }()
				return enc.Encode(view.Visible)
			case outputTable, "":
				printRecordTable(w, view, state.Mode)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", output)
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")

	return cmd
}

// printRecordTable prints records in TSV format.
func printRecordTable(w io.Writer, view *usecase.BuildViewOutput, mode domain.Mode) {
	if view.Empty() {
		_, _ = fmt.Fprintln(w, emptyFilterMessage)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tSTART\tEND\tDAYS\tRESPONSIBLE\tPROJECT\tNAME")
	for _, r := range view.Visible {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.ID,
			r.StatusClass.Label(),
			domain.FormatForDisplay(r.Start),
			domain.FormatForDisplay(r.End),
			r.DurationDays(),
			dash(r.Responsible),
			dash(r.Project),
			r.Name,
		)
	}
	_ = tw.Flush()

	if view.ShowDuration {
		_, _ = fmt.Fprintf(w, "\nTotal duration (%s): %d days\n", mode.Display(), view.Duration)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
