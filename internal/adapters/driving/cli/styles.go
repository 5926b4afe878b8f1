package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette used when writing to a terminal.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
	colourBorder  = lipgloss.Color("#45475A")
)

// styles renders report output. The zero value renders plain text.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	box    lipgloss.Style
	status map[string]lipgloss.Style
	styled bool
}

// stylesFor returns coloured styles when w is a terminal and plain ones
// otherwise, so piped output stays free of escape codes.
func stylesFor(w io.Writer) styles {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return styles{}
	}
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(colourPrimary),
		label: lipgloss.NewStyle().Foreground(colourMuted),
		value: lipgloss.NewStyle().Bold(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colourBorder).
			Padding(0, 1),
		status: map[string]lipgloss.Style{
			"completed": lipgloss.NewStyle().Foreground(colourSuccess),
			"cancelled": lipgloss.NewStyle().Foreground(colourWarning),
			"running":   lipgloss.NewStyle().Foreground(colourWarning),
			"failed":    lipgloss.NewStyle().Foreground(colourError),
		},
		styled: true,
	}
}

func (s styles) renderTitle(text string) string {
	if !s.styled {
		return text
	}
	return s.title.Render(text)
}

func (s styles) renderLabel(text string) string {
	if !s.styled {
		return text
	}
	return s.label.Render(text)
}

func (s styles) renderValue(text string) string {
	if !s.styled {
		return text
	}
	return s.value.Render(text)
}

func (s styles) renderStatus(status string) string {
	st, ok := s.status[status]
	if !s.styled || !ok {
		return status
	}
	return st.Render(status)
}

func (s styles) renderBox(body string) string {
	if !s.styled {
		return body
	}
	return s.box.Render(body)
}
