package pipeline

import (
	"github.com/theirongolddev/studioplan/internal/model"
)

// RunBatch projects the whole horizon with neutral adjustments.
func RunBatch(sc model.Scenario) (model.SimulationResult, error) {
	if err := Validate(sc); err != nil {
		return model.SimulationResult{}, err
	}
	sc = sc.Clone()

	st := InitialState(sc)
	records := make([]model.MonthRecord, 0, sc.Window.Months)
	for step := 1; step <= sc.Window.Months; step++ {
		var rec model.MonthRecord
		rec, st = ProjectMonth(sc, st, step, sc.Window.CalendarMonth(step), model.Adjustments{})
		records = append(records, rec)
	}

	return Aggregate(sc, records, st), nil
}

// Settlements returns the December records of a run.
func Settlements(records []model.MonthRecord) []model.MonthRecord {
	var out []model.MonthRecord
	for _, r := range records {
		if r.CalendarMonth == 12 {
			out = append(out, r)
		}
	}
	return out
}
