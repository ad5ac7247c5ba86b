package cmd

import (
	"strings"
	"testing"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"
)

func TestRenderMonthsListsSettlementsSeparately(t *testing.T) {
	sc := config.DefaultConfig().Scenario()
	sc.Window = model.Window{Months: 14, StartMonth: 3}
	res, err := pipeline.RunBatch(sc)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	out := renderMonths(res.Months)
	monthsPart, settlePart, ok := strings.Cut(out, "December settlements")
	if !ok {
		t.Fatalf("no settlement table:\n%s", out)
	}
	if strings.Contains(monthsPart, "reported") || strings.Contains(monthsPart, "settle") {
		t.Errorf("settlement values leaked into the months table:\n%s", monthsPart)
	}
	if !strings.Contains(monthsPart, "14 Apr") {
		t.Errorf("months table is missing the last month:\n%s", monthsPart)
	}

	var decLine string
	for _, l := range strings.Split(settlePart, "\n") {
		if strings.Contains(l, "10 Dec") {
			decLine = l
		}
	}
	dec := res.Months[9]
	for _, want := range []string{"reported", cli.FormatMoney(dec.AnnualTax)} {
		if !strings.Contains(decLine, want) {
			t.Errorf("settlement row %q missing %q", decLine, want)
		}
	}
}

func TestRenderSettlementsWithoutDecember(t *testing.T) {
	sc := config.DefaultConfig().Scenario()
	sc.Window = model.Window{Months: 3, StartMonth: 1}
	res, err := pipeline.RunBatch(sc)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if got := renderSettlements(res.Months); got != "" {
		t.Errorf("expected no settlement table, got:\n%s", got)
	}
	if strings.Contains(renderMonths(res.Months), "December settlements") {
		t.Error("months output has an empty settlement table")
	}
}

func TestRenderYearsComparesNet(t *testing.T) {
	out := renderYears([]pipeline.YearSummary{
		{Index: 1, FirstMonth: 1, LastMonth: 12, Net: 10000, AnnualTax: 800, Settled: true},
		{Index: 2, FirstMonth: 13, LastMonth: 14, Net: 2500},
	})

	lines := strings.Split(out, "\n")
	var second string
	for _, l := range lines {
		if strings.Contains(l, "13-14") {
			second = l
		}
	}
	if !strings.Contains(second, "-₺7.500,00") {
		t.Errorf("second year row %q missing change vs prior", second)
	}
	if !strings.Contains(out, "vs prior") {
		t.Error("missing vs prior header")
	}
}

func TestBreakdownBars(t *testing.T) {
	res := model.SimulationResult{
		Breakdown:      model.Breakdown{NetRevenue: 1000, FixedExpenses: 500, TrainerExpenses: 250},
		TotalTax:       100,
		FinalNetProfit: 150,
	}
	out := breakdownBars(res)
	if got := strings.Count(out, "\n"); got != 5 {
		t.Fatalf("got %d lines, want blank + 4 bars:\n%s", got, out)
	}
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.HasPrefix(strings.TrimSpace(l), "Fixed") && strings.Count(l, "█") != 20 {
			t.Errorf("fixed bar = %q, want half of 40", l)
		}
	}

	res.Breakdown.NetRevenue = 0
	if got := breakdownBars(res); got != "" {
		t.Errorf("bars without revenue = %q", got)
	}
}
