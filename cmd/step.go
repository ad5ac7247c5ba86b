package cmd

import (
	"fmt"

	"github.com/theirongolddev/studioplan/internal/store"
	"github.com/theirongolddev/studioplan/internal/tui"
	"github.com/theirongolddev/studioplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:     "step",
	Aliases: []string{"tui"},
	Short:   "Step through the projection month by month",
	Long: "Open the interactive stepper. Before each month you can shift sales\n" +
		"volume, send trainers on a week of vacation or add a one-off expense.",
	Args: cobra.NoArgs,
	RunE: runStep,
}

var flagStepExport string

func init() {
	stepCmd.Flags().StringVar(&flagStepExport, "export", "", "Write the finished run to a SQLite report database")
	rootCmd.AddCommand(stepCmd)
}

func runStep(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(sc)
	if err != nil {
		log.WithError(err).Error("projection rejected")
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(app, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	done, ok := final.(tui.App)
	if !ok || !done.Finished() {
		log.Debug("stepper closed before the horizon")
		return nil
	}
	logSettlements(done.Result().Months)

	if flagStepExport != "" {
		return exportRun(flagStepExport, store.ModeInteractive, done.Scenario(), done.Result())
	}
	return nil
}
