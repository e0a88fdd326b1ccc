package utils

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette and base styles, trimmed from the GC-dashboard palette down
// to what a record tree and a record browser actually render: a handle, a
// tag name, a primitive value, structural punctuation, and an error.
var (
	TagColor     = lipgloss.Color("#4682B4") // steel blue
	HandleColor  = lipgloss.Color("#FF8800") // orange
	ValueColor   = lipgloss.Color("#228B22") // forest green
	StringColor  = lipgloss.Color("#CCCCCC") // light gray
	MutedColor   = lipgloss.Color("#888888") // medium gray
	BorderColor  = lipgloss.Color("#666666") // dark gray
	ErrorColor   = lipgloss.Color("#CC3333") // dark red
)

var (
	TagStyle    = lipgloss.NewStyle().Foreground(TagColor).Bold(true)
	HandleStyle = lipgloss.NewStyle().Foreground(HandleColor)
	ValueStyle  = lipgloss.NewStyle().Foreground(ValueColor)
	StringStyle = lipgloss.NewStyle().Foreground(StringColor)
	MutedStyle  = lipgloss.NewStyle().Foreground(MutedColor)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(TagColor).
			Padding(0, 1).
			Bold(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	HelpBarStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)
)

// Indent renders depth levels of tree indentation the way a record-tree
// printer nests child records under their parent.
func Indent(depth int) string {
	return strings.Repeat("  ", depth)
}
