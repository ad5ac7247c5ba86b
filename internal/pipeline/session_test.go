package pipeline

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/model"
)

func runSession(t *testing.T, sc model.Scenario, adj func(step int) model.Adjustments) (*Session, model.SimulationResult) {
	t.Helper()

	s := NewSession()
	if err := s.Start(sc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for step := 1; ; step++ {
		r, err := s.Advance(adj(step))
		if err != nil {
			t.Fatalf("Advance step %d: %v", step, err)
		}
		if r.Done {
			if step != sc.Window.Months {
				t.Fatalf("finished at step %d, want %d", step, sc.Window.Months)
			}
			return s, r.Result
		}
	}
}

func neutral(int) model.Adjustments { return model.Adjustments{} }

func TestBatchInteractiveEquivalence(t *testing.T) {
	scenarios := map[string]model.Scenario{
		"defaults":    config.DefaultConfig().Scenario(),
		"one trainer": oneTrainerScenario(),
		"busy":        busyScenario(),
	}
	windows := []model.Window{
		{Months: 1, StartMonth: 1},
		{Months: 12, StartMonth: 1},
		{Months: 24, StartMonth: 6},
		{Months: 60, StartMonth: 12},
	}

	for name, base := range scenarios {
		for _, w := range windows {
			sc := base.Clone()
			sc.Window = w

			batch, err := RunBatch(sc)
			if err != nil {
				t.Fatalf("%s %+v: RunBatch: %v", name, w, err)
			}
			_, interactive := runSession(t, sc, neutral)

			if !reflect.DeepEqual(batch, interactive) {
				t.Errorf("%s %+v: batch and interactive results differ", name, w)
			}
		}
	}
}

func TestBalanceContinuity(t *testing.T) {
	sc := busyScenario()
	sc.Window = model.Window{Months: 30, StartMonth: 4}
	sc.Tax.SettlementPolicy = model.SettlementApply

	_, res := runSession(t, sc, func(step int) model.Adjustments {
		return model.Adjustments{
			VolumePercent: float64(step%5) * 5,
			ExtraExpense:  float64(step) * 100,
		}
	})

	prev := -sc.TotalStartupCost()
	for _, r := range res.Months {
		if !approxEqual(r.Balance, prev+r.Net) {
			t.Fatalf("month %d: balance %v, want %v", r.Month, r.Balance, prev+r.Net)
		}
		prev = r.Balance
	}
	if !approxEqual(res.FinalBalance, prev) {
		t.Errorf("final balance = %v, want %v", res.FinalBalance, prev)
	}
}

func TestYearEndReset(t *testing.T) {
	sc := busyScenario()
	sc.Window = model.Window{Months: 24, StartMonth: 6}

	s := NewSession()
	if err := s.Start(sc); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var resets []int
	for step := 1; step <= 24; step++ {
		if _, err := s.Advance(model.Adjustments{}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		cum := s.Cumulative()
		if cum.YearlyOfficialProfit == 0 {
			resets = append(resets, step)
			if cum.YearToDateTax != 0 {
				t.Errorf("step %d: year-to-date tax %v not reset", step, cum.YearToDateTax)
			}
		}
	}

	if want := []int{7, 19}; !reflect.DeepEqual(resets, want) {
		t.Errorf("resets at %v, want %v", resets, want)
	}
}

func TestAdjustmentsDoNotLeak(t *testing.T) {
	sc := busyScenario()
	sc.Window = model.Window{Months: 3, StartMonth: 1}

	_, adjusted := runSession(t, sc, func(step int) model.Adjustments {
		if step == 1 {
			return model.Adjustments{VolumePercent: -50, Vacations: []string{"a", "b"}, ExtraExpense: 9000}
		}
		return model.Adjustments{}
	})
	batch, err := RunBatch(sc)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	for i := 1; i < 3; i++ {
		a, b := adjusted.Months[i], batch.Months[i]
		if !approxEqual(a.Revenue, b.Revenue) || !approxEqual(a.Expenses, b.Expenses) {
			t.Errorf("month %d differs from neutral run after a one-off adjustment", i+1)
		}
	}
	if adjusted.Months[0].Adjustments.ExtraExpense != 9000 {
		t.Errorf("month 1 record lost its adjustments: %+v", adjusted.Months[0].Adjustments)
	}
}

func TestSessionStateErrors(t *testing.T) {
	s := NewSession()

	if _, err := s.Advance(model.Adjustments{}); !errors.Is(err, ErrInvalidSessionState) {
		t.Fatalf("Advance on idle: err = %v, want ErrInvalidSessionState", err)
	}
	if _, err := s.Result(); !errors.Is(err, ErrInvalidSessionState) {
		t.Fatalf("Result on idle: err = %v, want ErrInvalidSessionState", err)
	}

	sc := oneTrainerScenario()
	sc.Window.Months = 2
	if err := s.Start(sc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != SessionRunning || s.Step() != 1 {
		t.Fatalf("after Start: state %s step %d", s.State(), s.Step())
	}
	if _, err := s.Result(); !errors.Is(err, ErrInvalidSessionState) {
		t.Fatalf("Result while running: err = %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := s.Advance(model.Adjustments{}); err != nil {
			t.Fatalf("Advance %d: %v", i+1, err)
		}
	}
	if s.State() != SessionFinished {
		t.Fatalf("state = %s, want finished", s.State())
	}
	if _, err := s.Advance(model.Adjustments{}); !errors.Is(err, ErrInvalidSessionState) {
		t.Fatalf("Advance on finished: err = %v, want ErrInvalidSessionState", err)
	}
	if got := len(s.Records()); got != 2 {
		t.Errorf("records = %d, want 2", got)
	}
	if _, err := s.Result(); err != nil {
		t.Errorf("Result on finished: %v", err)
	}

	s.Abandon()
	if s.State() != SessionIdle || len(s.Records()) != 0 {
		t.Errorf("after Abandon: state %s, %d records", s.State(), len(s.Records()))
	}
}

func TestSessionRestartResetsState(t *testing.T) {
	sc := busyScenario()
	sc.Window.Months = 5

	s := NewSession()
	if err := s.Start(sc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.Advance(model.Adjustments{VolumePercent: 20}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}

	if err := s.Start(sc); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Step() != 1 || len(s.Records()) != 0 {
		t.Fatalf("restart kept step %d and %d records", s.Step(), len(s.Records()))
	}
	if s.Cumulative() != InitialState(sc) {
		t.Errorf("restart state = %+v, want initial state", s.Cumulative())
	}
}

func TestSessionRecordsAreCopies(t *testing.T) {
	sc := oneTrainerScenario()
	sc.Window.Months = 2

	s := NewSession()
	if err := s.Start(sc); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := s.Advance(model.Adjustments{}); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	recs := s.Records()
	recs[0].Net = -1
	if s.Records()[0].Net == -1 {
		t.Error("Records exposed internal storage")
	}
}

func TestInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*model.Scenario)
	}{
		{"nan rent", func(sc *model.Scenario) { sc.Expenses.Rent = math.NaN() }},
		{"inf package price", func(sc *model.Scenario) { sc.Income.PackagePrice = math.Inf(1) }},
		{"nan trainer lessons", func(sc *model.Scenario) { sc.Trainers[0].MonthlyLessons = math.NaN() }},
		{"zero horizon", func(sc *model.Scenario) { sc.Window.Months = 0 }},
		{"start month 0", func(sc *model.Scenario) { sc.Window.StartMonth = 0 }},
		{"start month 13", func(sc *model.Scenario) { sc.Window.StartMonth = 13 }},
		{"duplicate ids", func(sc *model.Scenario) { sc.Trainers = append(sc.Trainers, sc.Trainers[0]) }},
		{"unknown type", func(sc *model.Scenario) { sc.Trainers[0].Type = "intern" }},
		{"empty id", func(sc *model.Scenario) { sc.Trainers[0].ID = "" }},
		{"empty brackets", func(sc *model.Scenario) { sc.Tax.Brackets = nil }},
		{"full withholding", func(sc *model.Scenario) { sc.Tax.RentWithholding = 1 }},
		{"unknown policy", func(sc *model.Scenario) { sc.Tax.SettlementPolicy = "defer" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := oneTrainerScenario()
			tt.modify(&sc)

			if _, err := RunBatch(sc); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("RunBatch err = %v, want ErrInvalidConfiguration", err)
			}
			s := NewSession()
			if err := s.Start(sc); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Start err = %v, want ErrInvalidConfiguration", err)
			}
			if s.State() != SessionIdle {
				t.Errorf("state after failed Start = %s, want idle", s.State())
			}
		})
	}
}

func TestNegativeInputsPropagate(t *testing.T) {
	sc := oneTrainerScenario()
	sc.Expenses.Rent = -1000
	sc.Startup.Equipment = -5000

	if _, err := RunBatch(sc); err != nil {
		t.Fatalf("negative amounts rejected: %v", err)
	}
}

func TestAdvanceRejectsNonFiniteAdjustments(t *testing.T) {
	s := NewSession()
	if err := s.Start(oneTrainerScenario()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := s.Advance(model.Adjustments{ExtraExpense: math.NaN()}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
	if s.Step() != 1 || len(s.Records()) != 0 {
		t.Error("rejected adjustment still advanced the session")
	}
}
