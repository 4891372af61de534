package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette, adaptive to light and dark terminals. Accent colors follow the
// WordPress admin scheme.
var (
	PrimaryColor   = lipgloss.AdaptiveColor{Light: "#2271B1", Dark: "#72AEE6"}
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#646970", Dark: "#A7AAAD"}
	SuccessColor   = lipgloss.AdaptiveColor{Light: "#00A32A", Dark: "#68DE7C"}
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#D63638", Dark: "#FF8085"}
	WarningColor   = lipgloss.AdaptiveColor{Light: "#DBA617", Dark: "#F2D675"}
	HeadingColor   = lipgloss.AdaptiveColor{Light: "#1D2327", Dark: "#F0F0F1"}
	TextColor      = lipgloss.AdaptiveColor{Light: "#3C434A", Dark: "#DCDCDE"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "#8C8F94", Dark: "#8C8F94"}
)
