package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette of the color renderer. Values are hex colors.
type Theme struct {
	Background string `yaml:"background"`
	Highlight  string `yaml:"highlight"`
	Accent     string `yaml:"accent"`
	Success    string `yaml:"success"`
	Error      string `yaml:"error"`
}

// DefaultTheme is a dark palette with bronze headings.
func DefaultTheme() Theme {
	return Theme{
		Background: "#1E1E1E",
		Highlight:  "#B68D40",
		Accent:     "#363636",
		Success:    "#10B981",
		Error:      "#FF3131",
	}
}

// WithDefaults fills empty colors from DefaultTheme.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	if t.Background == "" {
		t.Background = d.Background
	}
	if t.Highlight == "" {
		t.Highlight = d.Highlight
	}
	if t.Accent == "" {
		t.Accent = d.Accent
	}
	if t.Success == "" {
		t.Success = d.Success
	}
	if t.Error == "" {
		t.Error = d.Error
	}
	return t
}

// styles builds lipgloss styles bound to w so color support is detected for
// the actual output.
func (t Theme) styles(w io.Writer) textStyles {
	t = t.WithDefaults()
	r := lipgloss.NewRenderer(w)

	heading := r.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(lipgloss.Color(t.Highlight))

	tag := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Highlight))

	segment := r.NewStyle().
		Foreground(lipgloss.Color(t.Accent)).
		Background(lipgloss.Color(t.Background))

	valid := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Success))

	invalid := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Error))

	missing := r.NewStyle().
		Foreground(lipgloss.Color(t.Error))

	return textStyles{
		heading: renderFunc(heading),
		tag:     renderFunc(tag),
		segment: renderFunc(segment),
		valid:   renderFunc(valid),
		invalid: renderFunc(invalid),
		missing: renderFunc(missing),
	}
}

func renderFunc(style lipgloss.Style) func(string) string {
	return func(s string) string {
		return style.Render(s)
	}
}
