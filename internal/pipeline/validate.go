package pipeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/model"
)

// ErrInvalidConfiguration is returned when a scenario cannot be projected.
var ErrInvalidConfiguration = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Validate rejects scenarios the engine cannot project meaningfully.
// Negative amounts are allowed and propagate arithmetically; non-finite
// numbers are not.
func Validate(sc model.Scenario) error {
	if sc.Window.Months < 1 {
		return invalid("horizon must be at least 1 month, got %d", sc.Window.Months)
	}
	if sc.Window.StartMonth < 1 || sc.Window.StartMonth > 12 {
		return invalid("start month must be 1-12, got %d", sc.Window.StartMonth)
	}

	e, s, in, tx := sc.Expenses, sc.Startup, sc.Income, sc.Tax
	fields := []struct {
		name string
		v    float64
	}{
		{"expenses.staff_fixed_cost", e.StaffFixedCost},
		{"expenses.staff_per_lesson", e.StaffPerLesson},
		{"expenses.staff_group_lesson", e.StaffGroupLesson},
		{"expenses.freelance_percentage", e.FreelancePercentage},
		{"expenses.freelance_group_lesson", e.FreelanceGroupLesson},
		{"expenses.rent", e.Rent},
		{"expenses.electricity", e.Electricity},
		{"expenses.water", e.Water},
		{"expenses.gas", e.Gas},
		{"expenses.amenities", e.Amenities},
		{"expenses.cleaning", e.Cleaning},
		{"expenses.subscriptions", e.Subscriptions},
		{"expenses.accountant", e.Accountant},
		{"startup.architecture", s.Architecture},
		{"startup.equipment", s.Equipment},
		{"startup.fixtures", s.Fixtures},
		{"startup.station_count", s.StationCount},
		{"startup.station_price", s.StationPrice},
		{"income.package_price", in.PackagePrice},
		{"income.group_package_price", in.GroupPackagePrice},
		{"income.cash_ratio", in.CashRatio},
		{"income.group_cash_ratio", in.GroupCashRatio},
		{"income.pos_rate", in.POSRate},
		{"tax.provisional_rate", tx.ProvisionalRate},
		{"tax.owner_contribution", tx.OwnerContribution},
		{"tax.cash_discount", tx.CashDiscount},
		{"tax.vat_rate", tx.VATRate},
		{"tax.rent_withholding", tx.RentWithholding},
	}
	for _, f := range fields {
		if !finite(f.v) {
			return invalid("%s is not a finite number", f.name)
		}
	}

	// Rent is grossed up by 1/(1-withholding); 100% would divide by zero.
	if tx.RentWithholding >= 1 {
		return invalid("tax.rent_withholding must be below 1, got %v", tx.RentWithholding)
	}
	if tx.VATRate <= -1 {
		return invalid("tax.vat_rate must be above -1, got %v", tx.VATRate)
	}
	switch tx.SettlementPolicy {
	case model.SettlementReport, model.SettlementApply:
	default:
		return invalid("unknown settlement policy %q", tx.SettlementPolicy)
	}
	if err := config.ValidateBrackets(tx.Brackets); err != nil {
		return invalid("%v", err)
	}

	seen := make(map[string]bool, len(sc.Trainers))
	for i, t := range sc.Trainers {
		if t.ID == "" {
			return invalid("trainer %d has no id", i+1)
		}
		if seen[t.ID] {
			return invalid("duplicate trainer id %q", t.ID)
		}
		seen[t.ID] = true
		if !t.Type.Valid() {
			return invalid("trainer %q: unknown type %q", t.ID, t.Type)
		}
		for _, v := range []float64{t.StudentCount, t.MonthlyLessons, t.MonthlyGroupLessons, t.WeeklyCancellations} {
			if !finite(v) {
				return invalid("trainer %q has a non-finite field", t.ID)
			}
		}
	}

	return nil
}

// ValidateAdjustments rejects non-finite overrides.
func ValidateAdjustments(adj model.Adjustments) error {
	if !finite(adj.VolumePercent) {
		return invalid("volume adjustment is not a finite number")
	}
	if !finite(adj.ExtraExpense) {
		return invalid("extra expense is not a finite number")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
