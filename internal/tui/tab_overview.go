package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/tui/components"
	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	res := a.result
	var b strings.Builder

	// Row 1: totals
	breakEven := "not reached"
	breakEvenTone := components.ToneWarn
	if res.BreakEvenMonth > 0 {
		m := res.Months[res.BreakEvenMonth-1]
		breakEven = cli.FormatMonthLabel(m.Month, m.CalendarMonthName)
		breakEvenTone = components.ToneGain
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{
			Label: "Final Balance",
			Value: cli.FormatMoney(res.FinalBalance),
			Delta: "after " + cli.FormatMoneyWhole(res.TotalStartup) + " startup",
			Tone:  components.ToneFor(res.FinalBalance),
		},
		{
			Label: "Avg Revenue",
			Value: cli.FormatMoney(res.AvgMonthlyRevenue),
			Delta: "per month",
		},
		{
			Label: "Avg Net",
			Value: cli.FormatMoney(res.AvgMonthlyNet),
			Delta: "per month",
			Tone:  components.ToneFor(res.AvgMonthlyNet),
		},
		{
			Label: "Break-even",
			Value: breakEven,
			Delta: fmt.Sprintf("tax %s", cli.FormatCompactMoney(res.TotalTax)),
			Tone:  breakEvenTone,
		},
	}, cw))
	b.WriteString("\n")

	// Row 2: monthly net
	if len(res.Months) > 0 {
		nets := make([]float64, len(res.Months))
		labels := make([]string, len(res.Months))
		balances := make([]float64, len(res.Months))
		for i, m := range res.Months {
			nets[i] = m.Net
			balances[i] = m.Balance
			labels[i] = fmt.Sprintf("%d", m.Month)
		}

		innerW := components.CardInnerWidth(cw)
		chartH := 10
		if a.height < 40 {
			chartH = 6
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Monthly Net (%d months)", len(res.Months)),
			components.NetChart(nets, labels, innerW, chartH),
			cw,
		))
		b.WriteString("\n")

		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		spaceStyle := lipgloss.NewStyle().Background(t.Surface)
		body := labelStyle.Render(cli.FormatCompactMoney(balances[0])+" ") +
			components.Sparkline(balances, t.Accent) +
			spaceStyle.Render(" ") +
			labelStyle.Render(cli.FormatCompactMoney(balances[len(balances)-1]))
		b.WriteString(components.ContentCard("Balance", body, cw))
	}

	return b.String()
}
