package style

import (
	"github.com/charmbracelet/lipgloss"
)

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text roles used by the summary, dry-run listing and error output.
var (
	TitleStyle   = fg(HeadingColor).Bold(true)
	MutedStyle   = fg(MutedColor)
	PathStyle    = fg(SecondaryColor).Italic(true)
	SuccessStyle = fg(SuccessColor).Bold(true)
	WarningStyle = fg(WarningColor).Bold(true)
	ErrorStyle   = fg(ErrorColor).Bold(true)
)

// Settings editor: the "=>" selector, field labels and their values.
var (
	SelectorStyle = fg(PrimaryColor).Bold(true)
	LabelStyle    = fg(TextColor)
	ValueStyle    = fg(SuccessColor)
)
