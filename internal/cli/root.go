// Package cli provides the command-line interface for gantt.
package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/tui"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupTimeline = "timeline"
	groupBackend  = "backend"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for gantt.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "gantt",
		Short: "Project and task timeline viewer",
		Long: `gantt shows tasks and projects as a Gantt timeline.

Records come from a REST API, a Google Sheets spreadsheet or a local
JSON file, selected by the [source] section of the configuration.
Without a subcommand the interactive timeline is launched.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.Config == nil {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := domain.NewViewState()
			if c != nil && c.Config != nil {
				state = c.Config.InitialViewState()
			}
			return launchTUIFunc(cmd.Context(), c, state)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTimeline, Title: "Timeline:"},
		&cobra.Group{ID: groupBackend, Title: "Backend:"},
	)

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTimeline

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTimeline

	legendCmd := newLegendCommand(c)
	legendCmd.GroupID = groupTimeline

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTimeline

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupTimeline

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupBackend

	snapshotCmd := newSnapshotCommand(c)
	snapshotCmd.GroupID = groupBackend

	root.AddCommand(
		configCmd,
		tuiCmd,
		listCmd,
		legendCmd,
		editCmd,
		exportCmd,
		serveCmd,
		snapshotCmd,
	)

	return root
}

// launchTUI runs the interactive timeline until the user quits.
func launchTUI(ctx context.Context, c *app.Container, state domain.ViewState) error {
	if c == nil {
		return fmt.Errorf("%w: no configuration loaded", domain.ErrSourceNotReady)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tui.ApplyColorProfile()
	model := tui.New(c, state)
	defer model.Close()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
