package components

import (
	"strings"

	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// KeyHint is one key binding shown in the status bar.
type KeyHint struct {
	Key  string
	Desc string
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// a status message on the right.
func RenderStatusBar(width int, hints []KeyHint, status string) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(width)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	statusStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var left strings.Builder
	left.WriteString(descStyle.Render(" "))
	for i, h := range hints {
		if i > 0 {
			left.WriteString(descStyle.Render("  "))
		}
		left.WriteString(keyStyle.Render(h.Key))
		left.WriteString(descStyle.Render(" " + h.Desc))
	}

	right := ""
	if status != "" {
		right = statusStyle.Render(status + " ")
	}

	padding := max(width-lipgloss.Width(left.String())-lipgloss.Width(right), 0)
	return barStyle.Render(left.String() + descStyle.Render(strings.Repeat(" ", padding)) + right)
}
