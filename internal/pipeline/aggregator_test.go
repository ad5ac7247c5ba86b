package pipeline

import (
	"testing"

	"github.com/theirongolddev/studioplan/internal/model"
)

func TestAggregate(t *testing.T) {
	sc := oneTrainerScenario()
	records := []model.MonthRecord{
		{Month: 1, CalendarMonth: 1, Revenue: 100, Net: -50, Balance: -150},
		{Month: 2, CalendarMonth: 2, Revenue: 300, Net: 100, Balance: -50},
		{Month: 3, CalendarMonth: 3, Revenue: 200, Net: 80, Balance: 30},
		{Month: 4, CalendarMonth: 4, Revenue: 200, Net: -40, Balance: -10},
	}
	st := model.CumulativeState{
		Balance:              -10,
		TotalStartup:         100,
		TotalTaxAccrued:      25,
		TotalGrossCash:       400,
		TotalGrossCard:       600,
		TotalVAT:             100,
		TotalPOS:             15,
		TotalFixedExpenses:   300,
		TotalTrainerExpenses: 200,
	}

	res := Aggregate(sc, records, st)

	if res.FinalBalance != -10 || res.TotalStartup != 100 || res.TotalTax != 25 {
		t.Errorf("carried totals wrong: %+v", res)
	}
	if res.RentStartup != 60000 {
		t.Errorf("rent startup = %v, want 60000", res.RentStartup)
	}
	if res.AvgMonthlyRevenue != 200 {
		t.Errorf("avg revenue = %v, want 200", res.AvgMonthlyRevenue)
	}
	if res.AvgMonthlyNet != 22.5 {
		t.Errorf("avg net = %v, want 22.5", res.AvgMonthlyNet)
	}
	if res.Breakdown.NetRevenue != 885 {
		t.Errorf("net revenue = %v, want 885", res.Breakdown.NetRevenue)
	}
	if res.Breakdown.TotalExpenses != 500 {
		t.Errorf("total expenses = %v, want 500", res.Breakdown.TotalExpenses)
	}
	if res.FinalNetProfit != 360 {
		t.Errorf("final net profit = %v, want 360", res.FinalNetProfit)
	}
	// First non-negative balance wins even if it dips again later.
	if res.BreakEvenMonth != 3 {
		t.Errorf("break-even month = %d, want 3", res.BreakEvenMonth)
	}

	records[0].Net = 999
	if res.Months[0].Net == 999 {
		t.Error("result shares its month slice with the caller")
	}
}

func TestAggregateEmpty(t *testing.T) {
	res := Aggregate(oneTrainerScenario(), nil, model.CumulativeState{Balance: -60000})
	if res.AvgMonthlyRevenue != 0 || res.AvgMonthlyNet != 0 {
		t.Errorf("empty run averages = %v / %v, want 0", res.AvgMonthlyRevenue, res.AvgMonthlyNet)
	}
	if res.BreakEvenMonth != 0 {
		t.Errorf("break-even month = %d, want 0", res.BreakEvenMonth)
	}
}

func TestAggregateYears(t *testing.T) {
	sc := busyScenario()
	sc.Window = model.Window{Months: 24, StartMonth: 6}

	res, err := RunBatch(sc)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	years := AggregateYears(res.Months)

	tests := []struct {
		first, last int
		settled     bool
	}{
		{1, 7, true},
		{8, 19, true},
		{20, 24, false},
	}
	if len(years) != len(tests) {
		t.Fatalf("got %d years, want %d", len(years), len(tests))
	}
	for i, tt := range tests {
		y := years[i]
		if y.Index != i+1 || y.FirstMonth != tt.first || y.LastMonth != tt.last || y.Settled != tt.settled {
			t.Errorf("year %d = %+v, want months %d-%d settled=%v", i+1, y, tt.first, tt.last, tt.settled)
		}
	}

	var net float64
	for _, y := range years {
		net += y.Net
	}
	var want float64
	for _, r := range res.Months {
		want += r.Net
	}
	if !approxEqual(net, want) {
		t.Errorf("year nets sum to %v, want %v", net, want)
	}

	dec := res.Months[6]
	if years[0].AnnualTax != dec.AnnualTax || years[0].Discrepancy != dec.TaxDiscrepancy {
		t.Errorf("first year settlement = %v/%v, want %v/%v",
			years[0].AnnualTax, years[0].Discrepancy, dec.AnnualTax, dec.TaxDiscrepancy)
	}
	if s := Settlements(res.Months); len(s) != 2 || s[0].Month != 7 || s[1].Month != 19 {
		t.Errorf("settlements at wrong months: %d found", len(s))
	}
}
