package repl

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/command"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	infoStyle = lipgloss.NewStyle()
)

// replyStyle returns the style for a reply of the given kind.
func replyStyle(k command.Kind) lipgloss.Style {
	switch k {
	case command.KindOK:
		return okStyle
	case command.KindError:
		return errorStyle
	default:
		return infoStyle
	}
}
