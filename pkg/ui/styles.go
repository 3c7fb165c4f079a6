package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	hintStyle   = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// Header formats a section header such as "Media File: song.mp3".
// Styling is dropped when stdout is not a rich terminal.
func Header(text string) string {
	if DetectFormat(os.Stdout) != FormatTerminal {
		return text
	}
	return headerStyle.Render(text)
}

// EmptyMarker formats the marker shown for zero-byte files,
// e.g. "(Empty JSON file)".
func EmptyMarker(format string) string {
	marker := fmt.Sprintf("(Empty %s file)", format)
	if DetectFormat(os.Stdout) != FormatTerminal {
		return marker
	}
	return mutedStyle.Render(marker)
}

// Hint formats an installation hint such as
// "Install 'ffmpeg' for detailed media analysis".
func Hint(text string) string {
	if DetectFormat(os.Stdout) != FormatTerminal {
		return text
	}
	return hintStyle.Render(text)
}
