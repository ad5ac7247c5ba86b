package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"
	"github.com/theirongolddev/studioplan/internal/tui/components"
	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// viewStepping renders the screen shown between months: running totals,
// the adjustments queued for the next month, the roster and the last
// month's result.
func (a App) viewStepping() string {
	t := theme.Active
	cw := a.contentWidth()

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(a.width)

	left := titleStyle.Render(" ◈ studioplan ") +
		dimStyle.Render(fmt.Sprintf(" next: month %d of %d · %s", a.session.Step(), a.session.Months(),
			pipeline.MonthName(a.session.CalendarMonth())))
	header := rowStyle.Render(left)

	var b strings.Builder
	b.WriteString(a.renderRunningTotals(cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Next Month", a.renderAdjustments(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Roster", a.renderRoster(components.CardInnerWidth(halves[1])), halves[1]),
	}))
	b.WriteString("\n")

	if a.hasLast {
		b.WriteString(components.ContentCard(
			"Last Month · "+a.last.CalendarMonthName,
			renderMonthDetail(a.last),
			cw,
		))
	}

	status := fmt.Sprintf("%d/%d done", a.done(), a.session.Months())
	if a.err != nil {
		status = a.err.Error()
	}
	hints := []components.KeyHint{
		{Key: "←/→", Desc: "volume"},
		{Key: "space", Desc: "vacation"},
		{Key: "e", Desc: "expense"},
		{Key: "enter", Desc: "run month"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
	if a.editing {
		hints = []components.KeyHint{{Key: "enter", Desc: "save"}, {Key: "esc", Desc: "cancel"}}
	}
	statusBar := components.RenderStatusBar(a.width, hints, status)

	return a.frame(header, b.String(), statusBar)
}

// done counts the months already projected.
func (a App) done() int {
	return len(a.session.Records())
}

func (a App) renderRunningTotals(cw int) string {
	cum := a.session.Cumulative()

	lastNet := components.Metric{Label: "Last Net", Value: "-", Tone: components.ToneNeutral}
	if a.hasLast {
		lastNet = components.Metric{
			Label: "Last Net",
			Value: cli.FormatMoney(a.last.Net),
			Delta: a.last.CalendarMonthName,
			Tone:  components.ToneFor(a.last.Net),
		}
	}

	return components.MetricCardRow([]components.Metric{
		{
			Label: "Balance",
			Value: cli.FormatMoney(cum.Balance),
			Delta: "startup " + cli.FormatMoneyWhole(cum.TotalStartup),
			Tone:  components.ToneFor(cum.Balance),
		},
		lastNet,
		{
			Label: "Tax Accrued",
			Value: cli.FormatMoney(cum.TotalTaxAccrued),
			Delta: "this year " + cli.FormatMoney(cum.YearToDateTax),
		},
		{
			Label: "Year Profit",
			Value: cli.FormatMoney(cum.YearlyOfficialProfit),
			Delta: "official, to date",
			Tone:  components.ToneFor(cum.YearlyOfficialProfit),
		},
	}, cw)
}

func (a App) renderAdjustments(w int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(components.HorizonBar(a.done(), a.session.Months(), max(w-8, 10)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Volume     "))
	b.WriteString(components.VolumeGauge(a.volume, 50, max(w-18, 9)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Expense    "))
	if a.editing {
		b.WriteString(a.extraIn.View())
		if a.inputErr != "" {
			b.WriteString("\n" + spaceStyle.Render("           ") + warnStyle.Render(a.inputErr))
		}
	} else {
		b.WriteString(valueStyle.Render(cli.FormatMoney(a.extra)))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Vacations  "))
	n := len(a.adjustments().Vacations)
	if n == 0 {
		b.WriteString(valueStyle.Render("none"))
	} else {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d trainer(s), one week", n)))
	}

	return b.String()
}

func (a App) renderRoster(w int) string {
	t := theme.Active

	if len(a.roster) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No trainers on the roster.")
	}

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	vacationStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder
	for i, tm := range a.roster {
		mark := "  "
		if a.vacations[tm.Trainer.ID] {
			mark = vacationStyle.Render("✈ ")
		} else {
			mark = rowStyle.Render(mark)
		}

		line := fmt.Sprintf("%-16s %-9s %5sh %s",
			truncStr(tm.Trainer.Name, 16),
			tm.Trainer.Type,
			cli.FormatVolume(tm.Lessons+tm.GroupLessons),
			cli.FormatMoneyWhole(tm.Cost))
		line = truncStr(line, max(w-2, 10))

		style := rowStyle
		if i == a.cursor {
			style = selectedStyle
		}
		b.WriteString(mark)
		b.WriteString(style.Render(line))
		if i < len(a.roster)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderMonthDetail lists one month's figures, with settlement lines for
// December.
func renderMonthDetail(m model.MonthRecord) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	amount := func(v float64) string {
		c := t.Green
		if v < 0 {
			c = t.Red
		}
		return lipgloss.NewStyle().Foreground(c).Background(t.Surface).Bold(true).Render(cli.FormatMoney(v))
	}

	cols := [][2]string{
		{"Revenue", valueStyle.Render(cli.FormatMoney(m.Revenue))},
		{"Expenses", valueStyle.Render(cli.FormatMoney(m.Expenses))},
		{"Tax", valueStyle.Render(cli.FormatMoney(m.Tax))},
		{"Net", amount(m.Net)},
		{"Balance", amount(m.Balance)},
		{"Packages", valueStyle.Render(cli.FormatVolume(m.SalesVolume) + " + " + cli.FormatVolume(m.GroupVolume) + " group")},
	}

	var b strings.Builder
	for i, c := range cols {
		switch {
		case i == 3:
			b.WriteString("\n")
		case i > 0:
			b.WriteString(spaceStyle.Render("   "))
		}
		b.WriteString(labelStyle.Render(c[0] + " "))
		b.WriteString(c[1])
	}

	if m.CalendarMonth == 12 {
		b.WriteString("\n")
		settled := "reported only"
		if m.SettlementApplied {
			settled = "applied to balance"
		}
		b.WriteString(labelStyle.Render("Annual tax "))
		b.WriteString(valueStyle.Render(cli.FormatMoney(m.AnnualTax)))
		b.WriteString(spaceStyle.Render("   "))
		b.WriteString(labelStyle.Render("Discrepancy "))
		b.WriteString(valueStyle.Render(cli.FormatSignedMoney(m.TaxDiscrepancy)))
		b.WriteString(spaceStyle.Render("   "))
		b.WriteString(labelStyle.Render(settled))
	}
	return b.String()
}
