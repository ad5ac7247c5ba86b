package components

import (
	"strings"

	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs are the result views shown once a run has finished.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Months", Key: 'm', KeyPos: 0},
	{Name: "Breakdown", Key: 'b', KeyPos: 0},
}

const tabPad = 1 // horizontal padding on each side of a tab label

func tabLabel(tab Tab, active bool) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, tabPad)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	padStyle := lipgloss.NewStyle().Background(t.Surface)
	pad := padStyle.Render(strings.Repeat(" ", tabPad))

	if active {
		return activeStyle.Render(tab.Name)
	}
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		return pad +
			inactiveStyle.Render(tab.Name[:tab.KeyPos]) +
			keyStyle.Render(string(tab.Name[tab.KeyPos])) +
			inactiveStyle.Render(tab.Name[tab.KeyPos+1:]) +
			pad
	}
	return pad + inactiveStyle.Render(tab.Name) + keyStyle.Render("["+string(tab.Key)+"]") + pad
}

// TabVisualWidth returns the rendered cell width of a tab label.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(tabLabel(tab, active))
}

// RenderTabBar renders the tab bar with the given active index, followed
// by a right-aligned caption.
func RenderTabBar(activeIdx int, width int, caption string) string {
	t := theme.Active

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	captionStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(width)

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = tabLabel(tab, i == activeIdx)
	}
	left := strings.Join(parts, sepStyle.Render("│"))

	right := ""
	if caption != "" {
		right = captionStyle.Render(caption + " ")
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return rowStyle.Render(left + captionStyle.Render(strings.Repeat(" ", gap)) + right)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
