package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StatusClass is the normalized category derived from a free-text status.
type StatusClass string

const (
	StatusInProgress StatusClass = "status-em-andamento"
	StatusLate       StatusClass = "status-atrasado"
	StatusFinished   StatusClass = "status-finalizado"
	StatusPending    StatusClass = "status-pendente"
	StatusCancelled  StatusClass = "status-cancelado"
	StatusDefault    StatusClass = "status-default"
)

// StatusDefinition ties keyword aliases to a class, legend label and color.
type StatusDefinition struct {
	Class StatusClass `json:"class" yaml:"class"`
	Label string      `json:"label" yaml:"label"`
	Color string      `json:"color" yaml:"color"`
	Keys  []string    `json:"-" yaml:"-"`
}

// statusDefinitions is scanned in order; the first match wins.
// The default entry must stay last.
var statusDefinitions = []StatusDefinition{
	{Keys: []string{"EM ANDAMENTO", "EM-ANDAMENTO", "EM_ANDAMENTO", "ANDAMENTO"}, Class: StatusInProgress, Label: "In progress", Color: "#0dcaf0"},
	{Keys: []string{"FINALIZADO", "CONCLUÍDO", "CONCLUIDO"}, Class: StatusFinished, Label: "Finished", Color: "#28a745"},
	{Keys: []string{"ATRASADO"}, Class: StatusLate, Label: "Late", Color: "#dc3545"},
	{Keys: []string{"PENDENTE"}, Class: StatusPending, Label: "Pending", Color: "#ffc107"},
	{Keys: []string{"CANCELADO"}, Class: StatusCancelled, Label: "Cancelled", Color: "#6c757d"},
	{Keys: []string{"DEFAULT", "OUTRO", ""}, Class: StatusDefault, Label: "Other", Color: "#cccccc"},
}

// StatusDefinitions returns a copy of the status rule table in match order.
func StatusDefinitions() []StatusDefinition {
	defs := make([]StatusDefinition, len(statusDefinitions))
	copy(defs, statusDefinitions)
	return defs
}

// DefinitionFor returns the definition of class, falling back to the default entry.
func DefinitionFor(class StatusClass) StatusDefinition {
	for _, def := range statusDefinitions {
		if def.Class == class {
			return def
		}
	}
	return statusDefinitions[len(statusDefinitions)-1]
}

// Label returns the legend label for the class.
func (c StatusClass) Label() string {
	return DefinitionFor(c).Label
}

// Color returns the hex color for the class.
func (c StatusClass) Color() string {
	return DefinitionFor(c).Color
}

// IsOpen reports whether bars of this class show the real-progress overlay.
func (c StatusClass) IsOpen() bool {
	return c == StatusInProgress || c == StatusPending
}

// IsValid reports whether c is a known class.
func (c StatusClass) IsValid() bool {
	for _, def := range statusDefinitions {
		if def.Class == c {
			return true
		}
	}
	return false
}

// ClassifyStatus maps a free-text status to its class. Matching ignores case,
// accents, whitespace and punctuation.
func ClassifyStatus(status string) StatusClass {
	folded := foldStatus(status)
	if folded == "" {
		return StatusDefault
	}
	for _, def := range statusDefinitions {
		for _, k := range def.Keys {
			key := foldStatus(k)
			if key != "" && strings.Contains(folded, key) {
				return def.Class
			}
		}
	}
	return StatusDefault
}

// foldStatus strips accents, uppercases and drops everything but letters and digits.
func foldStatus(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// legendKey normalizes a status for legend presence checks:
// trimmed, uppercased, whitespace and hyphens removed.
func legendKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(s)))
}
