package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagRunsDB string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs saved with --export",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&flagRunsDB, "db", filepath.Join(config.ConfigDir(), "runs.db"), "Report database")
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(_ *cobra.Command, _ []string) error {
	report, err := store.Open(flagRunsDB)
	if err != nil {
		return err
	}
	defer func() { _ = report.Close() }()

	runs, err := report.ListRuns()
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Printf("\n  No runs in %s\n", flagRunsDB)
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		breakEven := "-"
		if r.BreakEvenMonth > 0 {
			breakEven = fmt.Sprintf("month %d", r.BreakEvenMonth)
		}
		rows = append(rows, []string{
			r.ID,
			humanize.Time(r.CreatedAt),
			r.Mode,
			fmt.Sprintf("%d from %d", r.Months, r.StartMonth),
			fmt.Sprint(r.TrainerCount),
			cli.FormatMoney(r.FinalBalance.InexactFloat64()),
			cli.FormatMoney(r.TotalTax.InexactFloat64()),
			breakEven,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Saved runs",
		Headers: []string{"Run", "Saved", "Mode", "Months", "Trainers", "Final balance", "Tax", "Break-even"},
		Rows:    rows,
	}))
	return nil
}

func runRunsDelete(_ *cobra.Command, args []string) error {
	report, err := store.Open(flagRunsDB)
	if err != nil {
		return err
	}
	defer func() { _ = report.Close() }()

	if err := report.DeleteRun(args[0]); err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	fmt.Printf("  Deleted %s\n", args[0])
	return nil
}
