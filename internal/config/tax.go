package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/theirongolddev/studioplan/internal/model"
)

// DefaultTaxBrackets is the 2026 income tax table.
// Entries must be sorted by Upper ascending; the last bound is +Inf.
var DefaultTaxBrackets = []model.TaxBracket{
	{Upper: 190_000, Rate: 0.15},
	{Upper: 400_000, Rate: 0.20},
	{Upper: 1_000_000, Rate: 0.27},
	{Upper: 5_300_000, Rate: 0.35},
	{Upper: math.Inf(1), Rate: 0.40},
}

// Statutory defaults used when the scenario file leaves them unset.
const (
	DefaultProvisionalRate   = 0.20
	DefaultOwnerContribution = 11725.65 // monthly self-employment contribution
	DefaultCashDiscount      = 0.10
	DefaultVATRate           = 0.20
	DefaultRentWithholding   = 0.20
)

// DefaultTaxRules returns the reference rule set.
func DefaultTaxRules() model.TaxRules {
	return model.TaxRules{
		Brackets:          append([]model.TaxBracket(nil), DefaultTaxBrackets...),
		ProvisionalRate:   DefaultProvisionalRate,
		OwnerContribution: DefaultOwnerContribution,
		CashDiscount:      DefaultCashDiscount,
		VATRate:           DefaultVATRate,
		RentWithholding:   DefaultRentWithholding,
		SettlementPolicy:  model.SettlementReport,
	}
}

// BracketSlice is the taxed portion of one bracket.
type BracketSlice struct {
	Lower   float64
	Upper   float64
	Rate    float64
	Taxable float64
	Tax     float64
}

// TaxForProfit computes annual income tax on profit under brackets.
// Profit <= 0 owes nothing.
func TaxForProfit(brackets []model.TaxBracket, profit float64) float64 {
	var tax float64
	for _, s := range TaxBreakdown(brackets, profit) {
		tax += s.Tax
	}
	return tax
}

// TaxBreakdown returns the per-bracket slices that make up the tax on
// profit, lowest bracket first. Brackets above profit are omitted.
func TaxBreakdown(brackets []model.TaxBracket, profit float64) []BracketSlice {
	if profit <= 0 {
		return nil
	}

	var slices []BracketSlice
	lower := 0.0
	for _, b := range brackets {
		if profit <= lower {
			break
		}
		top := math.Min(profit, b.Upper)
		width := top - lower
		slices = append(slices, BracketSlice{
			Lower:   lower,
			Upper:   b.Upper,
			Rate:    b.Rate,
			Taxable: width,
			Tax:     width * b.Rate,
		})
		lower = b.Upper
	}
	return slices
}

// ValidateBrackets checks that a bracket table is usable: non-empty, finite
// non-negative rates, strictly ascending bounds, open-ended last bracket.
func ValidateBrackets(brackets []model.TaxBracket) error {
	if len(brackets) == 0 {
		return errors.New("tax table is empty")
	}
	prev := 0.0
	for i, b := range brackets {
		if math.IsNaN(b.Rate) || math.IsInf(b.Rate, 0) || b.Rate < 0 {
			return fmt.Errorf("bracket %d: invalid rate %v", i+1, b.Rate)
		}
		if math.IsNaN(b.Upper) || b.Upper <= prev {
			return fmt.Errorf("bracket %d: upper bound %v not above %v", i+1, b.Upper, prev)
		}
		if math.IsInf(b.Upper, 1) && i != len(brackets)-1 {
			return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i+1)
		}
		prev = b.Upper
	}
	if !math.IsInf(prev, 1) {
		return errors.New("last bracket must be unbounded (upper = inf)")
	}
	return nil
}
