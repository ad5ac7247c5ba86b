package model

// Adjustments are one-month overrides injected between interactive steps.
// The zero value is neutral.
type Adjustments struct {
	VolumePercent float64  // applied to all realized lesson counts, e.g. -10 or +25
	Vacations     []string // trainer IDs off for one week this month
	ExtraExpense  float64  // flat one-off cost for this month
}

// IsNeutral reports whether the adjustments change nothing.
func (a Adjustments) IsNeutral() bool {
	return a.VolumePercent == 0 && len(a.Vacations) == 0 && a.ExtraExpense == 0
}

// OnVacation reports whether trainer id is marked off this month.
func (a Adjustments) OnVacation(id string) bool {
	for _, v := range a.Vacations {
		if v == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with a.
func (a Adjustments) Clone() Adjustments {
	out := a
	out.Vacations = append([]string(nil), a.Vacations...)
	return out
}

// CumulativeState holds the running totals threaded through a run.
type CumulativeState struct {
	Balance              float64
	TotalStartup         float64
	YearlyOfficialProfit float64 // reset after each December settlement
	YearToDateTax        float64 // provisional tax this calendar year, reset with the profit
	TotalTaxAccrued      float64

	TotalGrossCash       float64
	TotalGrossCard       float64
	TotalVAT             float64
	TotalPOS             float64
	TotalFixedExpenses   float64
	TotalTrainerExpenses float64
}

// MonthRecord is the immutable output of one simulated month.
type MonthRecord struct {
	Month             int // 1-based step within the run
	CalendarMonth     int // 1-12
	CalendarMonthName string

	Revenue         float64 // net cash inflow: cash + card after VAT and POS
	Expenses        float64 // fixed + trainer
	FixedExpenses   float64
	TrainerExpenses float64
	GrossCash       float64
	GrossCard       float64
	VAT             float64
	POS             float64
	OfficialProfit  float64
	Tax             float64 // provisional tax accrued this month
	Net             float64
	Balance         float64

	SalesVolume float64 // individual packages sold
	GroupVolume float64 // group packages sold

	Adjustments Adjustments

	// December only.
	AnnualTax         float64
	TaxDiscrepancy    float64 // annual tax minus provisional tax paid this year
	SettlementApplied bool
}

// Breakdown categorizes the run totals.
type Breakdown struct {
	GrossCash       float64
	GrossCard       float64
	VAT             float64
	POS             float64
	FixedExpenses   float64
	TrainerExpenses float64
	NetRevenue      float64 // gross cash + gross card - VAT - POS
	TotalExpenses   float64 // fixed + trainer
}

// SimulationResult is the final output of a batch or interactive run.
type SimulationResult struct {
	Months            []MonthRecord
	FinalBalance      float64
	TotalStartup      float64
	RentStartup       float64
	AvgMonthlyRevenue float64
	AvgMonthlyNet     float64
	TotalTax          float64
	Breakdown         Breakdown
	FinalNetProfit    float64 // net revenue - total expenses - total tax
	BreakEvenMonth    int     // first step with balance >= 0, 0 if never
}
