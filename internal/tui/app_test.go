package tui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"
	"github.com/theirongolddev/studioplan/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func testScenario(months int) model.Scenario {
	sc := config.DefaultConfig().Scenario()
	sc.Window = model.Window{Months: months, StartMonth: 11}
	sc.Trainers = append(sc.Trainers, model.Trainer{
		ID: "trainer-2", Name: "Trainer 2", Type: model.TrainerFreelance,
		StudentCount: 6, MonthlyLessons: 24, MonthlyGroupLessons: 4,
	})
	return sc
}

func newTestApp(t *testing.T, months int) App {
	t.Helper()
	a, err := NewApp(testScenario(months))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a App, keys ...string) App {
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		a = m.(App)
	}
	return a
}

func TestNewAppRejectsInvalidScenario(t *testing.T) {
	sc := testScenario(0)
	if _, err := NewApp(sc); !errors.Is(err, pipeline.ErrInvalidConfiguration) {
		t.Fatalf("NewApp error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestVolumeAdjustmentAppliesToOneMonth(t *testing.T) {
	a := newTestApp(t, 3)

	a = press(a, "right", "right", "l")
	if a.volume != 15 {
		t.Fatalf("volume = %v, want 15", a.volume)
	}
	a = press(a, "left")
	if a.volume != 10 {
		t.Fatalf("volume = %v, want 10", a.volume)
	}

	a = press(a, "enter")
	if got := a.last.Adjustments.VolumePercent; got != 10 {
		t.Errorf("recorded volume = %v, want 10", got)
	}
	if a.volume != 0 {
		t.Errorf("volume not cleared after advance: %v", a.volume)
	}

	a = press(a, "enter")
	if !a.last.Adjustments.IsNeutral() {
		t.Errorf("second month inherited adjustments: %+v", a.last.Adjustments)
	}
}

func TestVolumeIsClamped(t *testing.T) {
	a := newTestApp(t, 1)
	for i := 0; i < 30; i++ {
		a = press(a, "left")
	}
	if a.volume != volumeMin {
		t.Errorf("volume = %v, want %v", a.volume, volumeMin)
	}
}

func TestVacationToggleFollowsCursor(t *testing.T) {
	a := newTestApp(t, 3)

	a = press(a, "down", "space")
	if !a.vacations["trainer-2"] || a.vacations["trainer-1"] {
		t.Fatalf("vacations = %v, want only trainer-2", a.vacations)
	}
	a = press(a, "space", "space")
	a = press(a, "enter")

	got := a.last.Adjustments.Vacations
	if len(got) != 1 || got[0] != "trainer-2" {
		t.Errorf("recorded vacations = %v, want [trainer-2]", got)
	}
}

func TestCursorStaysOnRoster(t *testing.T) {
	a := newTestApp(t, 1)
	a = press(a, "down", "down", "down")
	if a.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.cursor)
	}
	a = press(a, "k", "k")
	if a.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.cursor)
	}
}

func TestExtraExpenseInput(t *testing.T) {
	a := newTestApp(t, 3)

	a = press(a, "e", "2", ".", "5", "0", "0", ",", "5")
	if !a.editing {
		t.Fatal("expected edit mode")
	}
	// Keys go to the input while editing.
	a = press(a, "enter")
	if a.editing {
		t.Fatal("enter should close the input")
	}
	if a.extra != 2500.5 {
		t.Fatalf("extra = %v, want 2500.5", a.extra)
	}

	a = press(a, "enter")
	if a.last.Adjustments.ExtraExpense != 2500.5 {
		t.Errorf("recorded expense = %v", a.last.Adjustments.ExtraExpense)
	}
}

func TestExtraExpenseInputRejectsGarbage(t *testing.T) {
	a := newTestApp(t, 1)

	a = press(a, "e", "a", "b", "enter")
	if !a.editing || a.inputErr == "" {
		t.Fatalf("invalid amount should keep the input open with an error")
	}
	a = press(a, "esc")
	if a.editing || a.extra != 0 {
		t.Errorf("esc should cancel: editing=%v extra=%v", a.editing, a.extra)
	}
}

func TestClearAdjustments(t *testing.T) {
	a := newTestApp(t, 1)
	a = press(a, "right", "space", "x")
	if !a.adjustments().IsNeutral() {
		t.Errorf("adjustments after clear = %+v", a.adjustments())
	}
}

func TestFinishedRunMatchesBatch(t *testing.T) {
	sc := testScenario(3)
	a := newTestApp(t, 3)

	a = press(a, "enter", "enter")
	if a.Finished() {
		t.Fatal("finished early")
	}
	a = press(a, "enter")
	if !a.Finished() {
		t.Fatal("expected finished after 3 months")
	}

	want, err := pipeline.RunBatch(sc)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if !reflect.DeepEqual(a.Result(), want) {
		t.Errorf("interactive result differs from batch:\n got %+v\nwant %+v", a.Result(), want)
	}
	if len(a.Records()) != 3 {
		t.Errorf("records = %d, want 3", len(a.Records()))
	}

	// Further enters are ignored once finished.
	a = press(a, "enter")
	if a.err != nil {
		t.Errorf("enter after finish set error: %v", a.err)
	}
}

func TestResultTabs(t *testing.T) {
	a := newTestApp(t, 1)
	a = press(a, "enter")

	a = press(a, "m")
	if a.activeTab != 1 {
		t.Fatalf("activeTab = %d, want 1", a.activeTab)
	}
	a = press(a, "right")
	if a.activeTab != 2 {
		t.Fatalf("activeTab = %d, want 2", a.activeTab)
	}
	a = press(a, "right")
	if a.activeTab != 0 {
		t.Errorf("tabs should wrap, got %d", a.activeTab)
	}
	a = press(a, "left")
	if a.activeTab != 2 {
		t.Errorf("left from first tab = %d, want 2", a.activeTab)
	}
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp(t, 2)
	a = press(a, "?")
	if !a.showHelp {
		t.Fatal("? should open help")
	}
	a = press(a, "enter")
	if a.showHelp {
		t.Fatal("any key should close help")
	}
	if a.done() != 0 {
		t.Error("closing help must not advance the session")
	}
}

func TestViews(t *testing.T) {
	a := newTestApp(t, 13)

	if v := a.View(); !strings.Contains(v, "studioplan") || !strings.Contains(v, "Trainer 2") {
		t.Errorf("stepping view missing header or roster")
	}

	// Start month 11: step 2 is December.
	a = press(a, "enter", "enter")
	if v := a.View(); !strings.Contains(v, "Annual tax") {
		t.Errorf("December detail missing from stepping view")
	}

	for a.session.State() == pipeline.SessionRunning {
		a = press(a, "enter")
	}
	for _, tab := range []string{"o", "m", "b"} {
		a = press(a, tab)
		if v := a.View(); v == "" {
			t.Errorf("tab %s rendered empty", tab)
		}
	}
	a = press(a, "b")
	if v := a.View(); !strings.Contains(v, "Tax Years") {
		t.Error("breakdown tab missing tax years")
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if v := m.(App).View(); !strings.Contains(v, "too narrow") {
		t.Error("narrow terminal should show a notice")
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := a.tabAtX(pos + 50); got != -1 {
			t.Errorf("x past the tabs -> %d, want -1", got)
		}
	}
}
