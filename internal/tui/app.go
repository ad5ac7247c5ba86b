// Package tui provides the interactive Bubble Tea stepper for studioplan.
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"
	"github.com/theirongolddev/studioplan/internal/tui/components"
	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5

	volumeStep = 5.0
	volumeMin  = -100.0
	volumeMax  = 200.0
)

// App is the root Bubble Tea model. It owns one interactive session and
// advances it only from Update.
type App struct {
	session  *pipeline.Session
	scenario model.Scenario
	roster   []pipeline.TrainerMonth

	// Adjustments for the month about to run; cleared after every advance.
	volume    float64
	vacations map[string]bool
	extra     float64

	cursor   int
	editing  bool
	extraIn  textinput.Model
	inputErr string

	last     model.MonthRecord
	hasLast  bool
	finished bool
	result   model.SimulationResult
	err      error

	// UI state
	width        int
	height       int
	activeTab    int
	showHelp     bool
	monthsScroll int
}

// NewApp starts an interactive session for sc.
func NewApp(sc model.Scenario) (App, error) {
	s := pipeline.NewSession()
	if err := s.Start(sc); err != nil {
		return App{}, err
	}

	return App{
		session:   s,
		scenario:  s.Scenario(),
		roster:    pipeline.TrainerEstimates(sc),
		vacations: make(map[string]bool),
		extraIn:   newExtraInput(),
	}, nil
}

func newExtraInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "₺ "
	ti.Placeholder = "0"
	ti.CharLimit = 18
	ti.Width = 18
	return ti
}

// Finished reports whether the run reached its horizon.
func (a App) Finished() bool { return a.finished }

// Result returns the aggregated result of a finished run.
func (a App) Result() model.SimulationResult { return a.result }

// Scenario returns the snapshot the session runs on.
func (a App) Scenario() model.Scenario { return a.scenario }

// Records returns the months advanced so far.
func (a App) Records() []model.MonthRecord { return a.session.Records() }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// adjustments builds the value passed to the next Advance. Vacations follow
// roster order.
func (a App) adjustments() model.Adjustments {
	adj := model.Adjustments{
		VolumePercent: a.volume,
		ExtraExpense:  a.extra,
	}
	for _, t := range a.scenario.Trainers {
		if a.vacations[t.ID] {
			adj.Vacations = append(adj.Vacations, t.ID)
		}
	}
	return adj
}

func (a *App) clearAdjustments() {
	a.volume = 0
	a.extra = 0
	a.vacations = make(map[string]bool)
}

func (a App) advance() App {
	step, err := a.session.Advance(a.adjustments())
	if err != nil {
		a.err = err
		return a
	}
	a.err = nil
	a.last = step.Record
	a.hasLast = true
	a.clearAdjustments()

	if step.Done {
		a.finished = true
		a.result = step.Result
		a.activeTab = 0
	}
	return a
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.finished || a.showHelp {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == 1 && a.monthsScroll > 0 {
				a.monthsScroll--
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == 1 {
				a.monthsScroll = min(a.monthsScroll+1, max(len(a.result.Months)-1, 0))
			}
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if a.editing {
			return a.updateExtraInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.finished {
			return a.updateResult(key)
		}
		return a.updateStepping(key)
	}

	if a.editing {
		var cmd tea.Cmd
		a.extraIn, cmd = a.extraIn.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateStepping(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		a.session.Abandon()
		return a, tea.Quit
	case "left", "h":
		a.volume = math.Max(volumeMin, a.volume-volumeStep)
	case "right", "l":
		a.volume = math.Min(volumeMax, a.volume+volumeStep)
	case "j", "down":
		if a.cursor < len(a.roster)-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case " ", "space":
		if a.cursor < len(a.roster) {
			id := a.roster[a.cursor].Trainer.ID
			a.vacations[id] = !a.vacations[id]
		}
	case "e":
		a.editing = true
		a.inputErr = ""
		a.extraIn = newExtraInput()
		if a.extra != 0 {
			a.extraIn.SetValue(strconv.FormatFloat(a.extra, 'f', -1, 64))
		}
		cmd := a.extraIn.Focus()
		return a, cmd
	case "x":
		a.clearAdjustments()
	case "enter":
		a = a.advance()
	}
	return a, nil
}

func (a App) updateResult(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "j", "down":
		if a.activeTab == 1 {
			a.monthsScroll = min(a.monthsScroll+1, max(len(a.result.Months)-1, 0))
		}
	case "k", "up":
		if a.activeTab == 1 && a.monthsScroll > 0 {
			a.monthsScroll--
		}
	default:
		if len(key) == 1 {
			if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateExtraInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v, err := cli.ParseAmount(a.extraIn.Value())
		if err != nil {
			a.inputErr = err.Error()
			return a, nil
		}
		a.extra = v
		a.editing = false
		a.inputErr = ""
		a.extraIn.Blur()
		return a, nil
	case "esc":
		a.editing = false
		a.inputErr = ""
		a.extraIn.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.extraIn, cmd = a.extraIn.Update(msg)
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.finished {
		return a.viewResult()
	}
	return a.viewStepping()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  studioplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []components.KeyHint
	}{
		{"Before each month", []components.KeyHint{
			{Key: "← →", Desc: "Volume -/+5%"},
			{Key: "j k", Desc: "Move roster cursor"},
			{Key: "space", Desc: "Toggle one week of vacation"},
			{Key: "e", Desc: "Enter a one-off expense"},
			{Key: "x", Desc: "Clear adjustments"},
			{Key: "enter", Desc: "Run the month"},
		}},
		{"Results", []components.KeyHint{
			{Key: "o m b", Desc: "Jump to tab"},
			{Key: "← →", Desc: "Previous / Next tab"},
			{Key: "j k", Desc: "Scroll months"},
		}},
		{"General", []components.KeyHint{
			{Key: "?", Desc: "Toggle help"},
			{Key: "q", Desc: "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.Key)),
				descStyle.Render(bind.Desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// frame stacks header, content and status bar and fills the terminal with
// the theme background.
func (a App) frame(header, content, statusBar string) string {
	t := theme.Active
	w, cw := a.width, a.contentWidth()

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewResult() string {
	cw := a.contentWidth()
	caption := fmt.Sprintf("%d months from %s", len(a.result.Months), pipeline.MonthName(a.scenario.Window.StartMonth))
	header := components.RenderTabBar(a.activeTab, a.width, caption)

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderMonthsTab(cw)
	case 2:
		content = a.renderBreakdownTab(cw)
	}

	statusBar := components.RenderStatusBar(a.width, []components.KeyHint{
		{Key: "o/m/b", Desc: "tabs"},
		{Key: "j/k", Desc: "scroll"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}, "run complete")

	return a.frame(header, content, statusBar)
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow RenderTabBar: labels separated by one-column dividers.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
