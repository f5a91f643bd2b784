package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type theme struct {
	Label  lipgloss.Style
	Detail lipgloss.Style
}

// newTheme binds styles to w so colors are dropped when w is not a terminal.
func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		Label:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Detail: r.NewStyle().Faint(true),
	}
}
