package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/tui/components"
	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var monthColumns = []struct {
	title string
	width int
}{
	{"Month", 8},
	{"Revenue", 14},
	{"Expenses", 14},
	{"Tax", 12},
	{"Net", 14},
	{"Balance", 15},
	{"Adj", 12},
}

func (a App) renderMonthsTab(cw int) string {
	t := theme.Active
	months := a.result.Months

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	decemberStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)

	var header strings.Builder
	for i, c := range monthColumns {
		if i == 0 {
			header.WriteString(fmt.Sprintf("%-*s", c.width, c.title))
		} else {
			header.WriteString(fmt.Sprintf("%*s", c.width, c.title))
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(truncStr(header.String(), innerW)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(lipgloss.Width(header.String()), innerW))))
	b.WriteString("\n")

	visible := max(a.height-8, 5)
	offset := min(a.monthsScroll, max(len(months)-visible, 0))
	end := min(offset+visible, len(months))

	for i := offset; i < end; i++ {
		m := months[i]
		line := truncStr(monthRow(m), innerW)
		style := rowStyle
		if m.CalendarMonth == 12 {
			style = decemberStyle
		}
		b.WriteString(style.Render(line))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	title := fmt.Sprintf("Months %d-%d of %d", offset+1, end, len(months))
	return components.ContentCard(title, b.String(), cw)
}

func monthRow(m model.MonthRecord) string {
	cells := []string{
		cli.FormatMonthLabel(m.Month, m.CalendarMonthName),
		cli.FormatMoneyWhole(m.Revenue),
		cli.FormatMoneyWhole(m.Expenses),
		cli.FormatMoneyWhole(m.Tax),
		cli.FormatMoneyWhole(m.Net),
		cli.FormatMoneyWhole(m.Balance),
		adjustmentTag(m.Adjustments),
	}

	var b strings.Builder
	for i, c := range monthColumns {
		gap := max(c.width-lipgloss.Width(cells[i]), 0)
		if i == 0 {
			b.WriteString(cells[i] + strings.Repeat(" ", gap))
		} else {
			b.WriteString(strings.Repeat(" ", gap) + cells[i])
		}
	}
	return b.String()
}

// adjustmentTag summarizes a month's adjustments, e.g. "-10% ✈2 +₺".
func adjustmentTag(adj model.Adjustments) string {
	if adj.IsNeutral() {
		return ""
	}
	var parts []string
	if adj.VolumePercent != 0 {
		parts = append(parts, fmt.Sprintf("%+.0f%%", adj.VolumePercent))
	}
	if n := len(adj.Vacations); n > 0 {
		parts = append(parts, fmt.Sprintf("✈%d", n))
	}
	if adj.ExtraExpense != 0 {
		parts = append(parts, "+₺")
	}
	return strings.Join(parts, " ")
}
