package components

import (
	"fmt"

	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// HorizonBar renders how far a run has advanced through its horizon, e.g.
// "████░░░░ 4/12".
func HorizonBar(done, total, width int) string {
	t := theme.Active

	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	pct = max(0, min(pct, 1))

	bar := progress.New(
		progress.WithSolidFill(string(colorForPct(pct))),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(pct) + spaceStyle.Render(" ") + countStyle.Render(fmt.Sprintf("%d/%d", done, total))
}

func colorForPct(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 1:
		return t.Green
	case pct >= 0.5:
		return t.AccentBright
	default:
		return t.Accent
	}
}

// VolumeGauge renders a volume adjustment as a centered gauge: the marker
// sits left of center for cuts and right of center for boosts. limit is
// the percentage at either end.
func VolumeGauge(percent, limit float64, width int) string {
	t := theme.Active
	width = max(width, 5)
	if width%2 == 0 {
		width--
	}
	center := width / 2

	pos := center
	if limit > 0 {
		pos = center + int(max(-1, min(percent/limit, 1))*float64(center))
	}

	color := t.TextMuted
	switch {
	case percent > 0:
		color = t.Green
	case percent < 0:
		color = t.Red
	}

	trackStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)

	var out string
	for i := 0; i < width; i++ {
		switch {
		case i == pos:
			out += markStyle.Render("●")
		case i == center:
			out += trackStyle.Render("┼")
		default:
			out += trackStyle.Render("─")
		}
	}
	return out + markStyle.Render(fmt.Sprintf(" %+.0f%%", percent))
}
