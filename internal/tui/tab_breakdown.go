package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/pipeline"
	"github.com/theirongolddev/studioplan/internal/tui/components"
	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// keyValueBody renders aligned label/amount lines inside a card.
func keyValueBody(rows [][2]string, w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	ruleStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r[0]))
	}

	var b strings.Builder
	for i, r := range rows {
		if r[0] == cli.SeparatorRow {
			b.WriteString(ruleStyle.Render(strings.Repeat("─", max(w, 10))))
		} else {
			gap := max(w-labelW-lipgloss.Width(r[1]), 1)
			b.WriteString(labelStyle.Render(r[0] + strings.Repeat(" ", labelW-lipgloss.Width(r[0]))))
			b.WriteString(valueStyle.Render(strings.Repeat(" ", gap) + r[1]))
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderBreakdownTab(cw int) string {
	bd := a.result.Breakdown
	halves := components.LayoutRow(cw, 2)

	revenue := keyValueBody([][2]string{
		{"Gross cash", cli.FormatMoney(bd.GrossCash)},
		{"Gross card", cli.FormatMoney(bd.GrossCard)},
		{"VAT", "-" + cli.FormatMoney(bd.VAT)},
		{"POS fees", "-" + cli.FormatMoney(bd.POS)},
		{cli.SeparatorRow, ""},
		{"Net revenue", cli.FormatMoney(bd.NetRevenue)},
	}, components.CardInnerWidth(halves[0]))

	expenses := keyValueBody([][2]string{
		{"Fixed", cli.FormatMoney(bd.FixedExpenses)},
		{"Trainers", cli.FormatMoney(bd.TrainerExpenses)},
		{"Tax", cli.FormatMoney(a.result.TotalTax)},
		{cli.SeparatorRow, ""},
		{"Net profit", cli.FormatMoney(a.result.FinalNetProfit)},
		{"Startup", cli.FormatMoney(a.result.TotalStartup)},
	}, components.CardInnerWidth(halves[1]))

	var b strings.Builder
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Revenue", revenue, halves[0]),
		components.ContentCard("Expenses", expenses, halves[1]),
	}))
	b.WriteString("\n")
	b.WriteString(a.renderYearsCard(cw))
	return b.String()
}

func (a App) renderYearsCard(cw int) string {
	t := theme.Active
	years := pipeline.AggregateYears(a.result.Months)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	format := "%-12s %14s %14s %13s %13s %14s"

	var b strings.Builder
	b.WriteString(headerStyle.Render(truncStr(fmt.Sprintf(format,
		"Year", "Official", "Provisional", "Annual", "Difference", "Net"), innerW)))
	for _, y := range years {
		span := fmt.Sprintf("%d-%d", y.FirstMonth, y.LastMonth)
		annual, diff := "-", "-"
		if y.Settled {
			annual = cli.FormatMoneyWhole(y.AnnualTax)
			diff = cli.FormatSignedMoney(y.Discrepancy)
		}
		line := fmt.Sprintf(format, span,
			cli.FormatMoneyWhole(y.OfficialProfit),
			cli.FormatMoneyWhole(y.Tax),
			annual, diff,
			cli.FormatMoneyWhole(y.Net))
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(truncStr(line, innerW)))
	}

	return components.ContentCard("Tax Years", b.String(), cw)
}
