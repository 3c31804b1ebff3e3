package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var flags viewFlags
	var opts struct {
		Format string
		Output string
		Title  string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timeline",
		Long: `Render the filtered timeline and write it as HTML, JSON or YAML.

HTML output is a standalone page with the label column, the data table and
the bars positioned on the timeline. JSON and YAML carry the same render
instructions for other tools.

Examples:
  gantt export -f html -o timeline.html
  gantt export --mode projects -f json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state(c)
			if err != nil {
				return err
			}

			format := domain.ExportFormat(opts.Format)
			if _, ok := c.Exporters[format]; !ok {
				return fmt.Errorf("unknown export format %q (want html, json or yaml)", opts.Format)
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.Output != "" && opts.Output != "-" {
				f, err := os.Create(opts.Output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			out, err := c.ExportViewUseCase().Execute(cmd.Context(), usecase.ExportViewInput{
				Writer: w,
				Title:  opts.Title,
				Format: format,
				State:  state,
			})
			if err != nil {
				return err
			}

			if opts.Output != "" && opts.Output != "-" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", out.Visible, opts.Output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(domain.ExportHTML), "Output format: html, json or yaml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Document title")

	return cmd
}
