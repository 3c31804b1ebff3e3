package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
	"github.com/runoshun/gantt/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage gantt configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration,
including environment overrides.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.LocalConfig} {
				if info.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Source]")
			if out.SourceReady() {
				_, _ = fmt.Fprintf(w, "- %s: ready\n", out.Effective.Source.Kind)
			} else {
				_, _ = fmt.Fprintf(w, "- %s: missing %s\n", out.Effective.Source.Kind, strings.Join(out.MissingSource, ", "))
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}

	return cmd
}

// formatEffectiveConfig writes cfg as TOML. Durations are shown in their
// string form, the same way config files spell them.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	output := map[string]any{
		"source": map[string]any{
			"kind":             string(cfg.Source.Kind),
			"base_url":         cfg.Source.BaseURL,
			"timeout":          cfg.Source.Timeout.String(),
			"spreadsheet_id":   cfg.Source.SpreadsheetID,
			"credentials_file": cfg.Source.CredentialsFile,
			"file":             cfg.Source.File,
		},
		"sheets": map[string]any{
			"tasks_sheet":    cfg.Sheets.TasksSheet,
			"projects_sheet": cfg.Sheets.ProjectsSheet,
		},
		"view": map[string]any{
			"mode":      string(cfg.View.Mode),
			"zoom":      string(cfg.View.Zoom),
			"read_only": cfg.View.ReadOnly,
		},
		"refresh": map[string]any{
			"interval":   cfg.Refresh.Interval.String(),
			"after_edit": cfg.Refresh.AfterEdit.String(),
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
		},
	}

	if err := toml.NewEncoder(w).Encode(output); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(c *app.Container) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template with default values to stdout.

It does not depend on existing configuration files and will work even if they are broken.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigTemplateUseCase().Execute(cmd.Context(), usecase.ShowConfigTemplateInput{
				Source: domain.SourceKind(source),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Data source kind to template: http, sheets or file")

	return cmd
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool
	var source string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates .gantt.toml in the current directory.
With --global, creates the global configuration file at ~/.config/gantt/config.toml.

With --source, the [source] kind is preset and the keys that kind still
needs are listed.

Error conditions:
- Target file already exists: error`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				Global: global,
				Source: domain.SourceKind(source),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Created config file: %s\n", out.Path)
			if len(out.MissingSource) > 0 {
				_, _ = fmt.Fprintf(w, "Fill in [source] %s before loading records.\n", strings.Join(out.MissingSource, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")
	cmd.Flags().StringVar(&source, "source", "", "Data source kind to configure: http, sheets or file")

	return cmd
}
