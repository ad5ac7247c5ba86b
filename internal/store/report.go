// Package store writes projection results to a SQLite report database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Run modes recorded with each export.
const (
	ModeBatch       = "batch"
	ModeInteractive = "interactive"
)

// Report is an open report database.
type Report struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one finished projection to export.
type Run struct {
	Source   string // scenario file the run was loaded from
	Mode     string
	Scenario model.Scenario
	Result   model.SimulationResult
}

// RunSummary is a stored run's header row.
type RunSummary struct {
	ID             string
	CreatedAt      time.Time
	Source         string
	Mode           string
	Months         int
	StartMonth     int
	Policy         model.SettlementPolicy
	TrainerCount   int
	TotalStartup   decimal.Decimal
	FinalBalance   decimal.Decimal
	TotalTax       decimal.Decimal
	FinalNetProfit decimal.Decimal
	BreakEvenMonth int
}

// Open opens or creates the report database at the given path.
func Open(dbPath string) (*Report, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening report db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Report{db: db, now: time.Now}, nil
}

// Close closes the report database.
func (r *Report) Close() error {
	return r.db.Close()
}

// Money rounds v to two places, half away from zero.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func money(v float64) string {
	return Money(v).StringFixed(2)
}

// SaveRun stores a run with its months and trainer estimates and returns
// the new run ID.
func (r *Report) SaveRun(run Run) (string, error) {
	id := uuid.NewString()
	res := run.Result
	sc := run.Scenario

	tx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, created_at, source, mode, months, start_month, settlement_policy,
		 trainer_count, total_startup, rent_startup, final_balance,
		 avg_monthly_revenue, avg_monthly_net, total_tax, final_net_profit, break_even_month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.now().UTC().Format(time.RFC3339), run.Source, run.Mode,
		len(res.Months), sc.Window.StartMonth, string(sc.Tax.SettlementPolicy),
		len(sc.Trainers), money(res.TotalStartup), money(res.RentStartup), money(res.FinalBalance),
		money(res.AvgMonthlyRevenue), money(res.AvgMonthlyNet), money(res.TotalTax),
		money(res.FinalNetProfit), res.BreakEvenMonth,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, m := range res.Months {
		settled := 0
		if m.SettlementApplied {
			settled = 1
		}
		_, err = tx.Exec(`INSERT INTO run_months
			(run_id, step, calendar_month, month_name, revenue, expenses, fixed_expenses,
			 trainer_expenses, gross_cash, gross_card, vat, pos, official_profit, tax, net,
			 balance, sales_volume, group_volume, volume_percent, vacations, extra_expense,
			 annual_tax, tax_discrepancy, settlement_applied)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, m.Month, m.CalendarMonth, m.CalendarMonthName,
			money(m.Revenue), money(m.Expenses), money(m.FixedExpenses), money(m.TrainerExpenses),
			money(m.GrossCash), money(m.GrossCard), money(m.VAT), money(m.POS),
			money(m.OfficialProfit), money(m.Tax), money(m.Net), money(m.Balance),
			m.SalesVolume, m.GroupVolume, m.Adjustments.VolumePercent,
			strings.Join(m.Adjustments.Vacations, ","), money(m.Adjustments.ExtraExpense),
			money(m.AnnualTax), money(m.TaxDiscrepancy), settled,
		)
		if err != nil {
			return "", fmt.Errorf("inserting month %d: %w", m.Month, err)
		}
	}

	for _, tm := range pipeline.TrainerEstimates(sc) {
		_, err = tx.Exec(`INSERT INTO run_trainers
			(run_id, trainer_id, name, type, realized_lessons, group_lessons, monthly_cost, gross_revenue)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, tm.Trainer.ID, tm.Trainer.Name, string(tm.Trainer.Type),
			tm.Lessons, tm.GroupLessons, money(tm.Cost), money(tm.GrossRevenue),
		)
		if err != nil {
			return "", fmt.Errorf("inserting trainer %s: %w", tm.Trainer.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns all stored runs, newest first.
func (r *Report) ListRuns() ([]RunSummary, error) {
	rows, err := r.db.Query(`SELECT
		run_id, created_at, source, mode, months, start_month, settlement_policy,
		trainer_count, total_startup, final_balance, total_tax, final_net_profit, break_even_month
		FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []RunSummary
	for rows.Next() {
		var s RunSummary
		var created, policy string
		var source sql.NullString
		err := rows.Scan(
			&s.ID, &created, &source, &s.Mode, &s.Months, &s.StartMonth, &policy,
			&s.TrainerCount, &s.TotalStartup, &s.FinalBalance, &s.TotalTax,
			&s.FinalNetProfit, &s.BreakEvenMonth,
		)
		if err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, created)
		s.Source = source.String
		s.Policy = model.SettlementPolicy(policy)
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// LoadMonths reads a run's month records in step order. Amounts come back
// at their stored two-place precision.
func (r *Report) LoadMonths(runID string) ([]model.MonthRecord, error) {
	rows, err := r.db.Query(`SELECT
		step, calendar_month, month_name, revenue, expenses, fixed_expenses,
		trainer_expenses, gross_cash, gross_card, vat, pos, official_profit, tax, net,
		balance, sales_volume, group_volume, volume_percent, vacations, extra_expense,
		annual_tax, tax_discrepancy, settlement_applied
		FROM run_months WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var months []model.MonthRecord
	for rows.Next() {
		var m model.MonthRecord
		var revenue, expenses, fixed, trainer, cash, card, vat, pos,
			official, tax, net, balance, extra, annual, discrepancy decimal.Decimal
		var vacations string
		var settled int

		err := rows.Scan(
			&m.Month, &m.CalendarMonth, &m.CalendarMonthName,
			&revenue, &expenses, &fixed, &trainer, &cash, &card, &vat, &pos,
			&official, &tax, &net, &balance,
			&m.SalesVolume, &m.GroupVolume, &m.Adjustments.VolumePercent,
			&vacations, &extra, &annual, &discrepancy, &settled,
		)
		if err != nil {
			return nil, err
		}

		m.Revenue = revenue.InexactFloat64()
		m.Expenses = expenses.InexactFloat64()
		m.FixedExpenses = fixed.InexactFloat64()
		m.TrainerExpenses = trainer.InexactFloat64()
		m.GrossCash = cash.InexactFloat64()
		m.GrossCard = card.InexactFloat64()
		m.VAT = vat.InexactFloat64()
		m.POS = pos.InexactFloat64()
		m.OfficialProfit = official.InexactFloat64()
		m.Tax = tax.InexactFloat64()
		m.Net = net.InexactFloat64()
		m.Balance = balance.InexactFloat64()
		m.Adjustments.ExtraExpense = extra.InexactFloat64()
		m.AnnualTax = annual.InexactFloat64()
		m.TaxDiscrepancy = discrepancy.InexactFloat64()
		m.SettlementApplied = settled != 0
		if vacations != "" {
			m.Adjustments.Vacations = strings.Split(vacations, ",")
		}

		months = append(months, m)
	}
	return months, rows.Err()
}

// DeleteRun removes a run and its months and trainers.
func (r *Report) DeleteRun(runID string) error {
	_, err := r.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	return err
}

// RunCount returns the number of stored runs.
func (r *Report) RunCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}
