package pipeline

import (
	"github.com/theirongolddev/studioplan/internal/model"
)

// Aggregate folds a run's records and final state into the summary result.
// Averages are over the number of records; an empty run averages to zero.
func Aggregate(sc model.Scenario, records []model.MonthRecord, st model.CumulativeState) model.SimulationResult {
	res := model.SimulationResult{
		Months:       append([]model.MonthRecord(nil), records...),
		FinalBalance: st.Balance,
		TotalStartup: st.TotalStartup,
		RentStartup:  sc.RentStartupCost(),
		TotalTax:     st.TotalTaxAccrued,
	}

	var revenue, net float64
	for _, r := range records {
		revenue += r.Revenue
		net += r.Net
		if res.BreakEvenMonth == 0 && r.Balance >= 0 {
			res.BreakEvenMonth = r.Month
		}
	}
	if n := len(records); n > 0 {
		res.AvgMonthlyRevenue = revenue / float64(n)
		res.AvgMonthlyNet = net / float64(n)
	}

	b := model.Breakdown{
		GrossCash:       st.TotalGrossCash,
		GrossCard:       st.TotalGrossCard,
		VAT:             st.TotalVAT,
		POS:             st.TotalPOS,
		FixedExpenses:   st.TotalFixedExpenses,
		TrainerExpenses: st.TotalTrainerExpenses,
	}
	b.NetRevenue = b.GrossCash + b.GrossCard - b.VAT - b.POS
	b.TotalExpenses = b.FixedExpenses + b.TrainerExpenses
	res.Breakdown = b

	res.FinalNetProfit = b.NetRevenue - b.TotalExpenses - res.TotalTax

	return res
}

// YearSummary totals the months of one tax year within a run. A year ends
// at December or at the end of the run.
type YearSummary struct {
	Index          int // 1-based
	FirstMonth     int // step of the first month
	LastMonth      int
	Revenue        float64
	Expenses       float64
	OfficialProfit float64
	Tax            float64
	Net            float64
	AnnualTax      float64 // zero unless the year reached December
	Discrepancy    float64
	Settled        bool
}

// AggregateYears groups records into tax years.
func AggregateYears(records []model.MonthRecord) []YearSummary {
	var years []YearSummary
	var cur *YearSummary

	for _, r := range records {
		if cur == nil {
			years = append(years, YearSummary{Index: len(years) + 1, FirstMonth: r.Month})
			cur = &years[len(years)-1]
		}
		cur.LastMonth = r.Month
		cur.Revenue += r.Revenue
		cur.Expenses += r.Expenses
		cur.OfficialProfit += r.OfficialProfit
		cur.Tax += r.Tax
		cur.Net += r.Net

		if r.CalendarMonth == 12 {
			cur.AnnualTax = r.AnnualTax
			cur.Discrepancy = r.TaxDiscrepancy
			cur.Settled = true
			cur = nil
		}
	}

	return years
}
