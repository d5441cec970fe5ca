package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette follows the tool's dark theme.
var (
	colorAccent  = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorWarning = lipgloss.Color("#e0af68")
	colorDim     = lipgloss.Color("#565f89")
)

// styles renders headings. Suggestion lines are never styled.
type styles struct {
	plain   bool
	title   lipgloss.Style
	section lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		plain:   !color,
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		section: r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(colorSuccess),
		warn:    r.NewStyle().Foreground(colorWarning),
		dim:     r.NewStyle().Foreground(colorDim),
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}
