package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/gantt/internal/app"
	"github.com/runoshun/gantt/internal/domain"
)

// viewFlags are the selection flags shared by every command that renders records.
type viewFlags struct {
	Mode           string
	Zoom           string
	Project        string
	Responsible    string
	Classification string
	Sector         string
	Status         string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Mode, "mode", "m", "", "Collection to show: tasks or projects (default from config)")
	cmd.Flags().StringVarP(&f.Zoom, "zoom", "z", "", "Timeline zoom: "+joinOr(zoomValues()))
	cmd.Flags().StringVar(&f.Project, "project", domain.FilterAll, "Only records of this project")
	cmd.Flags().StringVar(&f.Responsible, "responsible", domain.FilterAll, "Only records of this responsible")
	cmd.Flags().StringVar(&f.Classification, "classification", domain.FilterAll, "Only records of this classification")
	cmd.Flags().StringVar(&f.Sector, "sector", domain.FilterAll, "Only records of this sector")
	cmd.Flags().StringVar(&f.Status, "status", domain.FilterAll, "Only records of this status (class, legend label or keyword)")

	_ = cmd.RegisterFlagCompletionFunc("zoom", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return zoomValues(), cobra.ShellCompDirectiveNoFileComp
	})
}

// zoomValues returns the accepted --zoom values, densest first.
func zoomValues() []string {
	zooms := domain.AllZooms()
	names := make([]string, len(zooms))
	for i, z := range zooms {
		names[i] = string(z)
	}
	return names
}

func joinOr(items []string) string {
	if len(items) < 2 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}

// state merges the flags over the configured initial view.
func (f *viewFlags) state(c *app.Container) (domain.ViewState, error) {
	state := c.Config.InitialViewState()
	if f.Mode != "" {
		state.Mode = domain.ParseMode(f.Mode)
	}
	if f.Zoom != "" {
		state.Zoom = domain.ParseZoom(f.Zoom)
	}
	status, err := parseStatusFilter(f.Status)
	if err != nil {
		return state, err
	}
	state.Filters = domain.Filters{
		Project:        orAll(f.Project),
		Responsible:    orAll(f.Responsible),
		Classification: orAll(f.Classification),
		Sector:         orAll(f.Sector),
		Status:         status,
	}
	return state, nil
}

func orAll(v string) string {
	if v == "" {
		return domain.FilterAll
	}
	return v
}

// parseStatusFilter accepts a status class ("status-atrasado"), a legend
// label ("Late") or a free-text status keyword ("atrasado").
func parseStatusFilter(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, domain.FilterAll) {
		return domain.FilterAll, nil
	}
	if domain.StatusClass(s).IsValid() {
		return s, nil
	}
	for _, def := range domain.StatusDefinitions() {
		if strings.EqualFold(def.Label, s) {
			return string(def.Class), nil
		}
	}
	if class := domain.ClassifyStatus(s); class != domain.StatusDefault {
		return string(class), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
