// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Turkish number layout: dot thousands, comma decimals.
const (
	moneyFormat = "#.###,##"
	wholeFormat = "#.###," // trailing decimal mark: zero precision
)

// FormatMoney formats a lira amount with two decimals.
// e.g., 40214.03 -> "₺40.214,03", -1500 -> "-₺1.500,00"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-₺" + humanize.FormatFloat(moneyFormat, -v)
	}
	return "₺" + humanize.FormatFloat(moneyFormat, v)
}

// FormatMoneyWhole formats a lira amount rounded to whole units.
func FormatMoneyWhole(v float64) string {
	if v < 0 {
		return "-₺" + humanize.FormatFloat(wholeFormat, -v)
	}
	return "₺" + humanize.FormatFloat(wholeFormat, v)
}

// FormatSignedMoney always shows the sign; used for net and discrepancy.
func FormatSignedMoney(v float64) string {
	if v > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatCompactMoney abbreviates large amounts for narrow cells.
// e.g., 1234567 -> "₺1,2M", 45200 -> "₺45,2K"
func FormatCompactMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000_000:
		return sign + "₺" + humanize.FormatFloat("#.###,#", v/1_000_000_000) + "B"
	case v >= 1_000_000:
		return sign + "₺" + humanize.FormatFloat("#.###,#", v/1_000_000) + "M"
	case v >= 10_000:
		return sign + "₺" + humanize.FormatFloat("#.###,#", v/1_000) + "K"
	default:
		return sign + "₺" + humanize.FormatFloat(wholeFormat, v)
	}
}

// FormatNumber adds dot separators to an integer.
// e.g., 1234567 -> "1.234.567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + humanize.FormatInteger(wholeFormat, int(-n))
	}
	return humanize.FormatInteger(wholeFormat, int(n))
}

// FormatRate formats a percentage that is already scaled 0-100.
func FormatRate(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// FormatVolume formats fractional package or hour counts.
func FormatVolume(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatDelta formats the change between two amounts with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return FormatMoney(delta)
}

// FormatMonthLabel returns a short step and month label.
// e.g., (7, "December") -> "7 Dec"
func FormatMonthLabel(step int, name string) string {
	if len(name) > 3 {
		name = name[:3]
	}
	return fmt.Sprintf("%d %s", step, name)
}

// ParseAmount reads a lira amount typed by a user. Both plain ("2500.5")
// and Turkish ("2.500,50") layouts are accepted, with or without the lira
// sign. An empty string is zero. Without a comma, several dots are
// thousands separators ("1.000.000"), while a single dot followed by
// exactly three digits ("2.500") is rejected as ambiguous.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₺"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, nil
	}
	switch groups := strings.Split(s, "."); {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case len(groups) == 2 && len(groups[1]) == 3:
		return 0, fmt.Errorf("ambiguous amount %q: write %s,00 or %s", s, s, groups[0]+groups[1])
	case len(groups) > 2:
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return 0, fmt.Errorf("not an amount: %q", s)
			}
		}
		s = strings.Join(groups, "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not an amount: %q", s)
	}
	return v, nil
}
