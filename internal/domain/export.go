package domain

import (
	"io"
	"time"
)

// ExportFormat names an output encoding of a rendered view.
type ExportFormat string

const (
	ExportHTML ExportFormat = "html"
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// ExportDocument is a self-contained snapshot of one view.
// Fields are ordered to minimize memory padding.
type ExportDocument struct {
	Generated    time.Time          `json:"generated" yaml:"generated"`
	Layout       *Layout            `json:"layout,omitempty" yaml:"layout,omitempty"`
	Title        string             `json:"title" yaml:"title"`
	Mode         Mode               `json:"mode" yaml:"mode"`
	Zoom         Zoom               `json:"zoom" yaml:"zoom"`
	Records      []*Record          `json:"records" yaml:"records"`
	Legend       []StatusDefinition `json:"legend" yaml:"legend"`
	Filters      Filters            `json:"filters" yaml:"filters"`
	ActiveStatus string             `json:"activeStatus" yaml:"activeStatus"`
	Duration     int                `json:"duration,omitempty" yaml:"duration,omitempty"`
	ShowDuration bool               `json:"showDuration" yaml:"showDuration"`
}

// Exporter writes an ExportDocument in one format.
type Exporter interface {
	Export(w io.Writer, doc *ExportDocument) error
}
