// Package export writes rendered timeline views as HTML, JSON or YAML.
package export

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/runoshun/gantt/internal/domain"
)

//go:embed timeline.html.tmpl
var timelineTemplate string

const (
	headerHeight = 40
	detailTop    = 20
	barHeight    = domain.RowHeight - 2*domain.BarInset
)

// progressShade marks the part of an open bar that elapsed before the real start.
const progressShade = "rgba(0,0,0,.35)"

var (
	tmplTimeline     *template.Template
	tmplTimelineOnce sync.Once
)

func getTimelineTemplate() *template.Template {
	tmplTimelineOnce.Do(func() {
		tmplTimeline = template.Must(template.New("timeline").Parse(timelineTemplate))
	})
	return tmplTimeline
}

// htmlRow joins a visible record with its bar geometry.
type htmlRow struct {
	Background template.CSS
	ID         string
	Name       string
	RowTitle   string
	Label      string
	Tooltip    string
	Start      string
	End        string
	Duration   int
	Left       int
	Top        int
	Width      int
}

type htmlPage struct {
	*domain.ExportDocument
	Rows         []htmlRow
	HeaderHeight int
	DetailTop    int
	RowHeight    int
	BarHeight    int
}

// HTML renders a standalone page with absolutely positioned bars.
type HTML struct{}

// Export implements domain.Exporter.
func (HTML) Export(w io.Writer, doc *domain.ExportDocument) error {
	page := htmlPage{
		ExportDocument: doc,
		HeaderHeight:   headerHeight,
		DetailTop:      detailTop,
		RowHeight:      domain.RowHeight,
		BarHeight:      barHeight,
	}
	if doc.Layout != nil {
		page.Rows = make([]htmlRow, 0, len(doc.Layout.Bars))
		for i, bar := range doc.Layout.Bars {
			if i >= len(doc.Records) {
				break
			}
			r := doc.Records[i]
			page.Rows = append(page.Rows, htmlRow{
				Background: barBackground(bar),
				ID:         bar.ID,
				Name:       r.Name,
				RowTitle:   r.RowTitle(doc.Mode),
				Label:      bar.Label,
				Tooltip:    bar.TooltipText,
				Start:      domain.FormatForDisplay(r.Start),
				End:        domain.FormatForDisplay(r.End),
				Duration:   bar.DurationDays,
				Left:       bar.BarLeft,
				Top:        bar.BarTop,
				Width:      bar.BarWidth,
			})
		}
	}
	return getTimelineTemplate().Execute(w, page)
}

// barBackground is the status color, shaded up to the real start when the
// bar carries a gradient.
func barBackground(bar domain.Bar) template.CSS {
	color := bar.StatusClass.Color()
	if bar.GradientFraction <= 0 {
		return template.CSS(color)
	}
	return template.CSS(fmt.Sprintf(
		"linear-gradient(to right, %s 0%%, %s %.1f%%, transparent %.1f%%), %s",
		progressShade, progressShade, bar.GradientFraction, bar.GradientFraction, color,
	))
}

var _ domain.Exporter = HTML{}
