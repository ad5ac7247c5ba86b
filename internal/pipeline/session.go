package pipeline

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/studioplan/internal/model"
)

// ErrInvalidSessionState is returned when a session operation is called in
// the wrong state, e.g. Advance before Start or after the last month.
var ErrInvalidSessionState = errors.New("invalid session state")

// SessionState is the lifecycle phase of an interactive run.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionRunning
	SessionFinished
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionRunning:
		return "running"
	case SessionFinished:
		return "finished"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// StepResult is what one Advance produced. Result is set only when Done.
type StepResult struct {
	Record model.MonthRecord
	Done   bool
	Result model.SimulationResult
}

// Session steps a projection one month at a time, taking fresh
// adjustments for every month. Not safe for concurrent use.
type Session struct {
	state    SessionState
	scenario model.Scenario
	step     int
	cum      model.CumulativeState
	records  []model.MonthRecord
	result   model.SimulationResult
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// Start begins a run of sc from the same initial state the batch driver
// uses. Starting a running or finished session discards its previous run.
func (s *Session) Start(sc model.Scenario) error {
	if err := Validate(sc); err != nil {
		return err
	}

	sc = sc.Clone()
	s.scenario = sc
	s.cum = InitialState(sc)
	s.step = 1
	s.records = make([]model.MonthRecord, 0, sc.Window.Months)
	s.result = model.SimulationResult{}
	s.state = SessionRunning
	return nil
}

// Advance projects the current month with adj and moves to the next one.
// The final month finishes the session and carries the aggregated result.
func (s *Session) Advance(adj model.Adjustments) (StepResult, error) {
	if s.state != SessionRunning {
		return StepResult{}, fmt.Errorf("advance in %s session: %w", s.state, ErrInvalidSessionState)
	}
	if err := ValidateAdjustments(adj); err != nil {
		return StepResult{}, err
	}

	cal := s.scenario.Window.CalendarMonth(s.step)
	rec, next := ProjectMonth(s.scenario, s.cum, s.step, cal, adj)
	s.cum = next
	s.records = append(s.records, rec)

	out := StepResult{Record: rec}
	if s.step >= s.scenario.Window.Months {
		s.state = SessionFinished
		s.result = Aggregate(s.scenario, s.records, s.cum)
		out.Done = true
		out.Result = s.result
		return out, nil
	}

	s.step++
	return out, nil
}

// Abandon discards the run and returns the session to idle.
func (s *Session) Abandon() {
	*s = Session{}
}

// State returns the lifecycle phase.
func (s *Session) State() SessionState { return s.state }

// Step returns the 1-based month the next Advance will project. After the
// run finishes it stays at the final month.
func (s *Session) Step() int { return s.step }

// CalendarMonth returns the calendar month of the current step, or 0 when
// idle.
func (s *Session) CalendarMonth() int {
	if s.state == SessionIdle {
		return 0
	}
	return s.scenario.Window.CalendarMonth(s.step)
}

// Months returns the horizon of the current run.
func (s *Session) Months() int { return s.scenario.Window.Months }

// Scenario returns the run's snapshot.
func (s *Session) Scenario() model.Scenario { return s.scenario.Clone() }

// Cumulative returns the running totals after the last advanced month.
func (s *Session) Cumulative() model.CumulativeState { return s.cum }

// Records returns a copy of the months projected so far.
func (s *Session) Records() []model.MonthRecord {
	return append([]model.MonthRecord(nil), s.records...)
}

// Result returns the aggregated result once the session has finished.
func (s *Session) Result() (model.SimulationResult, error) {
	if s.state != SessionFinished {
		return model.SimulationResult{}, fmt.Errorf("result of %s session: %w", s.state, ErrInvalidSessionState)
	}
	return s.result, nil
}
