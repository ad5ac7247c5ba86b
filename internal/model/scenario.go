// Package model defines domain types for studio scenarios and projections.
package model

// TrainerType selects how a trainer is compensated.
type TrainerType string

const (
	TrainerSalary    TrainerType = "salary"    // fixed staff, paid per realized lesson
	TrainerFreelance TrainerType = "freelance" // revenue share on individual, flat fee on group
	TrainerOwner     TrainerType = "owner"     // owner-operator, statutory contribution only
)

// Valid reports whether t is a known compensation type.
func (t TrainerType) Valid() bool {
	switch t {
	case TrainerSalary, TrainerFreelance, TrainerOwner:
		return true
	}
	return false
}

// Expenses holds fixed monthly costs and trainer compensation rates.
type Expenses struct {
	StaffFixedCost       float64 `toml:"staff_fixed_cost" yaml:"staff_fixed_cost"`
	StaffPerLesson       float64 `toml:"staff_per_lesson" yaml:"staff_per_lesson"`
	StaffGroupLesson     float64 `toml:"staff_group_lesson" yaml:"staff_group_lesson"`
	FreelancePercentage  float64 `toml:"freelance_percentage" yaml:"freelance_percentage"`
	FreelanceGroupLesson float64 `toml:"freelance_group_lesson" yaml:"freelance_group_lesson"`
	Rent                 float64 `toml:"rent" yaml:"rent"` // net, before withholding
	Electricity          float64 `toml:"electricity" yaml:"electricity"`
	Water                float64 `toml:"water" yaml:"water"`
	Gas                  float64 `toml:"gas" yaml:"gas"`
	Amenities            float64 `toml:"amenities" yaml:"amenities"`
	Cleaning             float64 `toml:"cleaning" yaml:"cleaning"`
	Subscriptions        float64 `toml:"subscriptions" yaml:"subscriptions"`
	Accountant           float64 `toml:"accountant" yaml:"accountant"`
}

// StartupCosts holds one-time setup costs and facility capacity.
type StartupCosts struct {
	Architecture float64 `toml:"architecture" yaml:"architecture"`
	Equipment    float64 `toml:"equipment" yaml:"equipment"`
	Fixtures     float64 `toml:"fixtures" yaml:"fixtures"`
	// StationCount is the number of reformer machines, i.e. group class capacity.
	StationCount float64 `toml:"station_count" yaml:"station_count"`
	// StationPrice is informational; it is never added to the startup total.
	StationPrice float64 `toml:"station_price" yaml:"station_price"`
}

// Income holds package pricing and payment mix.
type Income struct {
	PackagePrice      float64 `toml:"package_price" yaml:"package_price"`
	GroupPackagePrice float64 `toml:"group_package_price" yaml:"group_package_price"`
	CashRatio         float64 `toml:"cash_ratio" yaml:"cash_ratio"`             // percent, individual sales
	GroupCashRatio    float64 `toml:"group_cash_ratio" yaml:"group_cash_ratio"` // percent, group sales
	POSRate           float64 `toml:"pos_rate" yaml:"pos_rate"`                 // percent of card revenue
}

// Trainer is one roster entry.
type Trainer struct {
	ID                  string      `toml:"id" yaml:"id"`
	Name                string      `toml:"name" yaml:"name"`
	Type                TrainerType `toml:"type" yaml:"type"`
	StudentCount        float64     `toml:"student_count,omitempty" yaml:"student_count,omitempty"`
	MonthlyLessons      float64     `toml:"monthly_lessons" yaml:"monthly_lessons"`
	MonthlyGroupLessons float64     `toml:"monthly_group_lessons" yaml:"monthly_group_lessons"`
	WeeklyCancellations float64     `toml:"weekly_cancellations" yaml:"weekly_cancellations"`
}

// RealizedLessons returns booked individual hours minus four weeks of
// cancellations, floored at zero.
func (t Trainer) RealizedLessons() float64 {
	r := t.MonthlyLessons - t.WeeklyCancellations*4
	if r < 0 {
		return 0
	}
	return r
}

// Window is the simulated period.
type Window struct {
	Months     int `toml:"months" yaml:"months"`
	StartMonth int `toml:"start_month" yaml:"start_month"` // 1 = January
}

// HorizonPresets are the horizons offered by the setup wizard.
var HorizonPresets = []int{6, 12, 24, 60}

// CalendarMonth returns the calendar month (1-12) for a 1-based step.
func (w Window) CalendarMonth(step int) int {
	return (w.StartMonth-1+step-1)%12 + 1
}

// SettlementPolicy controls what happens to the December tax true-up.
type SettlementPolicy string

const (
	// SettlementReport records the discrepancy without touching the balance.
	SettlementReport SettlementPolicy = "report"
	// SettlementApply charges (or refunds) the discrepancy in December.
	SettlementApply SettlementPolicy = "apply"
)

// TaxBracket is one row of a progressive tax table.
type TaxBracket struct {
	Upper float64 `toml:"upper" yaml:"upper"` // +Inf for the last bracket
	Rate  float64 `toml:"rate" yaml:"rate"`   // marginal rate as a fraction
}

// TaxRules holds the statutory constants the engine consults.
type TaxRules struct {
	Brackets          []TaxBracket     `toml:"brackets" yaml:"brackets"`
	ProvisionalRate   float64          `toml:"provisional_rate" yaml:"provisional_rate"`
	OwnerContribution float64          `toml:"owner_contribution" yaml:"owner_contribution"`
	CashDiscount      float64          `toml:"cash_discount" yaml:"cash_discount"`
	VATRate           float64          `toml:"vat_rate" yaml:"vat_rate"`
	RentWithholding   float64          `toml:"rent_withholding" yaml:"rent_withholding"`
	SettlementPolicy  SettlementPolicy `toml:"settlement_policy" yaml:"settlement_policy"`
}

// Scenario is an immutable per-run snapshot of everything the user entered.
type Scenario struct {
	Window   Window       `toml:"simulation" yaml:"simulation"`
	Expenses Expenses     `toml:"expenses" yaml:"expenses"`
	Startup  StartupCosts `toml:"startup" yaml:"startup"`
	Income   Income       `toml:"income" yaml:"income"`
	Tax      TaxRules     `toml:"tax" yaml:"tax"`
	Trainers []Trainer    `toml:"trainers" yaml:"trainers"`
}

// RentStartupCost is the move-in cost: two months deposit plus one month
// agency fee.
func (s Scenario) RentStartupCost() float64 {
	return s.Expenses.Rent*2 + s.Expenses.Rent*1
}

// TotalStartupCost is the opening cash outlay before month one.
func (s Scenario) TotalStartupCost() float64 {
	return s.Startup.Architecture + s.Startup.Equipment + s.Startup.Fixtures + s.RentStartupCost()
}

// Clone returns a copy that shares no slices with s.
func (s Scenario) Clone() Scenario {
	out := s
	out.Trainers = append([]Trainer(nil), s.Trainers...)
	out.Tax.Brackets = append([]TaxBracket(nil), s.Tax.Brackets...)
	return out
}
