package style

import (
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// RenderMarkdown renders markdown for w. Non-terminal writers and renderer
// failures get the markdown source back unchanged.
func RenderMarkdown(w io.Writer, content string) string {
	if !ColorEnabled(w) {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Bold formats s as bold when w supports styling
func Bold(w io.Writer, s string) string {
	if !ColorEnabled(w) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// Apply applies a lipgloss style when w supports styling
func Apply(w io.Writer, st interface{ Render(...string) string }, s string) string {
	if !ColorEnabled(w) {
		return s
	}
	return st.Render(s)
}
