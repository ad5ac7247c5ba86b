// Package pipeline runs studio projections: the monthly engine, the batch
// and interactive drivers, and result aggregation.
package pipeline

import (
	"math"
	"time"

	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/model"
)

const (
	lessonsPerPackage = 10 // one package is ten lesson-hours or ten visits
	vacationFactor    = 0.75
)

// trainerMonth applies vacation and volume adjustments to t and prices its
// compensation.
func trainerMonth(sc model.Scenario, t model.Trainer, adj model.Adjustments) TrainerMonth {
	pt := t.RealizedLessons()
	group := t.MonthlyGroupLessons

	if adj.OnVacation(t.ID) {
		pt *= vacationFactor
		group *= vacationFactor
	}

	factor := 1 + adj.VolumePercent/100
	pt *= factor
	group *= factor

	var cost float64
	switch t.Type {
	case model.TrainerSalary:
		cost = pt*sc.Expenses.StaffPerLesson + group*sc.Expenses.StaffGroupLesson
	case model.TrainerFreelance:
		lessonPrice := sc.Income.PackagePrice / lessonsPerPackage
		cost = pt*lessonPrice*(sc.Expenses.FreelancePercentage/100) + group*sc.Expenses.FreelanceGroupLesson
	case model.TrainerOwner:
		cost = sc.Tax.OwnerContribution
	}

	gross := pt/lessonsPerPackage*sc.Income.PackagePrice +
		group*sc.Startup.StationCount/lessonsPerPackage*sc.Income.GroupPackagePrice

	return TrainerMonth{
		Trainer:      t,
		Lessons:      pt,
		GroupLessons: group,
		Cost:         cost,
		GrossRevenue: gross,
	}
}

// streamRevenue splits package sales into cash and card by cashRatio
// (percent). Cash sales carry the cash discount; card revenue is gross.
func streamRevenue(sales, price, cashRatio, cashDiscount float64) (cash, grossCard float64) {
	cashCount := sales * (cashRatio / 100)
	cardCount := sales * ((100 - cashRatio) / 100)
	return cashCount * (price * (1 - cashDiscount)), cardCount * price
}

// fixedCosts sums the monthly overheads, grossing rent up for withholding.
func fixedCosts(sc model.Scenario, extra float64) float64 {
	e := sc.Expenses
	rent := e.Rent / (1 - sc.Tax.RentWithholding)
	return e.StaffFixedCost +
		rent +
		e.Electricity +
		e.Water +
		e.Gas +
		e.Amenities +
		e.Cleaning +
		e.Subscriptions +
		e.Accountant +
		extra
}

// ProjectMonth computes one month of the projection. It is pure: the
// returned state is a fresh value and st is left untouched.
//
// step is the 1-based month within the run and calendarMonth the resolved
// calendar month (1-12); the December month triggers the annual tax
// settlement.
func ProjectMonth(
	sc model.Scenario,
	st model.CumulativeState,
	step int,
	calendarMonth int,
	adj model.Adjustments,
) (model.MonthRecord, model.CumulativeState) {
	// Volume and trainer cost
	var ptLessons, groupLessons, trainerCost float64
	for _, t := range sc.Trainers {
		tm := trainerMonth(sc, t, adj)
		ptLessons += tm.Lessons
		groupLessons += tm.GroupLessons
		trainerCost += tm.Cost
	}

	// Sales are fractional packages; rounding would skew the totals.
	ptSales := ptLessons / lessonsPerPackage
	groupSales := groupLessons * sc.Startup.StationCount / lessonsPerPackage

	ptCash, ptCard := streamRevenue(ptSales, sc.Income.PackagePrice, sc.Income.CashRatio, sc.Tax.CashDiscount)
	groupCash, groupCard := streamRevenue(groupSales, sc.Income.GroupPackagePrice, sc.Income.GroupCashRatio, sc.Tax.CashDiscount)

	cash := ptCash + groupCash
	card := ptCard + groupCard

	// Card prices include VAT; cash sales carry none.
	vat := card - card/(1+sc.Tax.VATRate)
	pos := card * (sc.Income.POSRate / 100)
	revenue := cash + (card - vat - pos)

	fixed := fixedCosts(sc, adj.ExtraExpense)
	expenses := fixed + trainerCost

	// Only documented (card) revenue enters the tax base.
	officialProfit := (card - vat) - expenses
	st.YearlyOfficialProfit += officialProfit

	var tax float64
	if officialProfit > 0 {
		tax = officialProfit * sc.Tax.ProvisionalRate
	}

	net := revenue - expenses - tax

	rec := model.MonthRecord{
		Month:             step,
		CalendarMonth:     calendarMonth,
		CalendarMonthName: MonthName(calendarMonth),
		Revenue:           revenue,
		Expenses:          expenses,
		FixedExpenses:     fixed,
		TrainerExpenses:   trainerCost,
		GrossCash:         cash,
		GrossCard:         card,
		VAT:               vat,
		POS:               pos,
		OfficialProfit:    officialProfit,
		Tax:               tax,
		SalesVolume:       ptSales,
		GroupVolume:       groupSales,
		Adjustments:       adj.Clone(),
	}

	st.YearToDateTax += tax
	st.TotalTaxAccrued += tax

	if calendarMonth == 12 {
		annual := config.TaxForProfit(sc.Tax.Brackets, math.Max(0, st.YearlyOfficialProfit))
		rec.AnnualTax = annual
		rec.TaxDiscrepancy = annual - st.YearToDateTax

		if sc.Tax.SettlementPolicy == model.SettlementApply {
			net -= rec.TaxDiscrepancy
			st.TotalTaxAccrued += rec.TaxDiscrepancy
			rec.SettlementApplied = true
		}

		st.YearlyOfficialProfit = 0
		st.YearToDateTax = 0
	}

	st.Balance += net
	rec.Net = net
	rec.Balance = st.Balance

	st.TotalGrossCash += cash
	st.TotalGrossCard += card
	st.TotalVAT += vat
	st.TotalPOS += pos
	st.TotalFixedExpenses += fixed
	st.TotalTrainerExpenses += trainerCost

	return rec, st
}

// InitialState returns the cumulative state before month one: the balance
// starts at minus the total startup cost.
func InitialState(sc model.Scenario) model.CumulativeState {
	total := sc.TotalStartupCost()
	return model.CumulativeState{
		Balance:      -total,
		TotalStartup: total,
	}
}

// MonthName returns the English name of calendar month m (1-12).
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}
