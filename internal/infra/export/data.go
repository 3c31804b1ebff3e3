package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/gantt/internal/domain"
)

// JSON writes the document as indented JSON.
type JSON struct{}

// Export implements domain.Exporter.
func (JSON) Export(w io.Writer, doc *domain.ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// YAML writes the document as YAML.
type YAML struct{}

// Export implements domain.Exporter.
func (YAML) Export(w io.Writer, doc *domain.ExportDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Exporters returns every built-in exporter keyed by format.
func Exporters() map[domain.ExportFormat]domain.Exporter {
	return map[domain.ExportFormat]domain.Exporter{
		domain.ExportHTML: HTML{},
		domain.ExportJSON: JSON{},
		domain.ExportYAML: YAML{},
	}
}

var (
	_ domain.Exporter = JSON{}
	_ domain.Exporter = YAML{}
)
