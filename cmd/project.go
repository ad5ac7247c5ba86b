package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"
	"github.com/theirongolddev/studioplan/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagMonthly bool
	flagExport  string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run a batch projection over the whole horizon",
	Args:  cobra.NoArgs,
	RunE:  runProject,
}

func init() {
	addProjectFlags(projectCmd)
	rootCmd.AddCommand(projectCmd)
}

func addProjectFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagMonthly, "monthly", false, "Show the month-by-month table")
	c.Flags().StringVar(&flagExport, "export", "", "Write the run to a SQLite report database")
}

func runProject(cmd *cobra.Command, _ []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	res, err := pipeline.RunBatch(sc)
	if err != nil {
		log.WithError(err).Error("projection rejected")
		return err
	}
	logSettlements(res.Months)

	renderProjection(sc, res, flagMonthly)

	if flagExport != "" {
		return exportRun(flagExport, store.ModeBatch, sc, res)
	}
	return nil
}

func logSettlements(months []model.MonthRecord) {
	for _, m := range pipeline.Settlements(months) {
		log.WithFields(logrus.Fields{
			"step":        m.Month,
			"annual_tax":  cli.FormatMoney(m.AnnualTax),
			"discrepancy": cli.FormatMoney(m.TaxDiscrepancy),
			"applied":     m.SettlementApplied,
		}).Info("december settlement")
	}
}

func exportRun(path, mode string, sc model.Scenario, res model.SimulationResult) error {
	report, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = report.Close() }()

	id, err := report.SaveRun(store.Run{
		Source:   scenarioPath(),
		Mode:     mode,
		Scenario: sc,
		Result:   res,
	})
	if err != nil {
		return fmt.Errorf("exporting run: %w", err)
	}

	log.WithFields(logrus.Fields{"path": path, "run": id}).Info("exported run")
	if !flagQuiet {
		fmt.Printf("\n  Saved run %s to %s\n", id, path)
	}
	return nil
}

func renderProjection(sc model.Scenario, res model.SimulationResult, monthly bool) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("STUDIO PROJECTION  %d months from %s",
		sc.Window.Months, pipeline.MonthName(sc.Window.StartMonth))))
	fmt.Println()

	breakEven := "not within horizon"
	if res.BreakEvenMonth > 0 {
		m := res.Months[res.BreakEvenMonth-1]
		breakEven = fmt.Sprintf("month %d (%s)", m.Month, m.CalendarMonthName)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Summary", "Amount"},
		Rows: [][]string{
			{"Startup cost", cli.FormatMoney(res.TotalStartup)},
			{"  rent deposit + fee", cli.FormatMoney(res.RentStartup)},
			{cli.SeparatorRow},
			{"Avg monthly revenue", cli.FormatMoney(res.AvgMonthlyRevenue)},
			{"Avg monthly net", cli.FormatMoney(res.AvgMonthlyNet)},
			{"Total tax", cli.FormatMoney(res.TotalTax)},
			{"Net profit", cli.FormatMoney(res.FinalNetProfit)},
			{cli.SeparatorRow},
			{"Break-even", breakEven},
		},
		Footer: []string{"Final balance", cli.FormatMoney(res.FinalBalance)},
	}))

	if len(res.Months) > 0 {
		balances := make([]float64, len(res.Months))
		for i, m := range res.Months {
			balances[i] = m.Balance
		}
		fmt.Printf("\n  Balance  %s  %s\n", cli.RenderSparkline(balances), cli.RenderAmount(res.FinalBalance))
	}

	fmt.Println()
	fmt.Print(renderTrainers(sc))

	pkg := pipeline.EstimatedPackages(sc)
	fmt.Println()
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Packages / month", fmt.Sprintf("%s individual, %s group",
			cli.FormatNumber(int64(pkg.Individual)), cli.FormatNumber(int64(pkg.Group)))},
	}))

	if monthly {
		fmt.Println()
		fmt.Print(renderMonths(res.Months))
	}

	fmt.Println()
	fmt.Print(renderBreakdown(res))

	if years := pipeline.AggregateYears(res.Months); len(years) > 0 {
		fmt.Println()
		fmt.Print(renderYears(years))
	}

	if res.FinalBalance < 0 {
		fmt.Println()
		fmt.Print(cli.RenderWarning(fmt.Sprintf("Balance is still negative after %d months.", len(res.Months))))
	}
}

func renderTrainers(sc model.Scenario) string {
	est := pipeline.TrainerEstimates(sc)
	if len(est) == 0 {
		return cli.RenderWarning("No trainers on the roster.")
	}

	rows := make([][]string, 0, len(est))
	var cost, gross float64
	for _, tm := range est {
		rows = append(rows, []string{
			tm.Trainer.Name,
			string(tm.Trainer.Type),
			cli.FormatVolume(tm.Lessons),
			cli.FormatVolume(tm.GroupLessons),
			tm.EarningsLabel() + " " + cli.FormatMoney(tm.Cost),
			cli.FormatMoney(tm.GrossRevenue),
		})
		cost += tm.Cost
		gross += tm.GrossRevenue
	}

	return cli.RenderTable(cli.Table{
		Title:   "Trainers (typical month)",
		Headers: []string{"Trainer", "Type", "Hours", "Group", "Cost", "Brings in"},
		Rows:    rows,
		Footer:  []string{"Total", "", "", "", cli.FormatMoney(cost), cli.FormatMoney(gross)},
	})
}

func renderMonths(months []model.MonthRecord) string {
	rows := make([][]string, 0, len(months))
	for i, m := range months {
		rows = append(rows, []string{
			cli.FormatMonthLabel(m.Month, m.CalendarMonthName),
			cli.FormatMoney(m.Revenue),
			cli.FormatMoney(m.Expenses),
			cli.FormatMoney(m.Tax),
			cli.FormatMoney(m.Net),
			cli.FormatMoney(m.Balance),
		})
		if m.CalendarMonth == 12 && i < len(months)-1 {
			rows = append(rows, []string{cli.SeparatorRow})
		}
	}

	out := cli.RenderTable(cli.Table{
		Title:   "Months",
		Headers: []string{"Month", "Revenue", "Expenses", "Tax", "Net", "Balance"},
		Rows:    rows,
	})
	if settle := renderSettlements(months); settle != "" {
		out += "\n" + settle
	}
	return out
}

// renderSettlements lists each December's annual tax against the
// provisional tax paid that year.
func renderSettlements(months []model.MonthRecord) string {
	decs := pipeline.Settlements(months)
	if len(decs) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(decs))
	for _, m := range decs {
		rows = append(rows, []string{
			cli.FormatMonthLabel(m.Month, m.CalendarMonthName),
			cli.FormatMoney(m.AnnualTax),
			cli.FormatSignedMoney(m.TaxDiscrepancy),
			settlementNote(m),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   "December settlements",
		Headers: []string{"Month", "Annual tax", "Difference", "Status"},
		Rows:    rows,
	})
}

func settlementNote(m model.MonthRecord) string {
	if m.SettlementApplied {
		return "applied"
	}
	return "reported"
}

func renderBreakdown(res model.SimulationResult) string {
	bd := res.Breakdown
	out := cli.RenderTable(cli.Table{
		Title:   "Breakdown",
		Headers: []string{"Category", "Total"},
		Rows: [][]string{
			{"Gross cash", cli.FormatMoney(bd.GrossCash)},
			{"Gross card", cli.FormatMoney(bd.GrossCard)},
			{"VAT", cli.FormatMoney(-bd.VAT)},
			{"POS fees", cli.FormatMoney(-bd.POS)},
			{"Net revenue", cli.FormatMoney(bd.NetRevenue)},
			{cli.SeparatorRow},
			{"Fixed expenses", cli.FormatMoney(bd.FixedExpenses)},
			{"Trainer expenses", cli.FormatMoney(bd.TrainerExpenses)},
			{"Total expenses", cli.FormatMoney(bd.TotalExpenses)},
			{"Tax", cli.FormatMoney(res.TotalTax)},
		},
		Footer: []string{"Net profit", cli.FormatMoney(res.FinalNetProfit)},
	})
	return out + breakdownBars(res)
}

// breakdownBars shows where net revenue goes, scaled to net revenue.
func breakdownBars(res model.SimulationResult) string {
	bd := res.Breakdown
	if bd.NetRevenue <= 0 {
		return ""
	}

	parts := []struct {
		label string
		value float64
	}{
		{"Fixed   ", bd.FixedExpenses},
		{"Trainers", bd.TrainerExpenses},
		{"Tax     ", res.TotalTax},
		{"Profit  ", res.FinalNetProfit},
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, p := range parts {
		b.WriteString(cli.RenderHorizontalBar(p.label, p.value, bd.NetRevenue, 40))
		b.WriteString("\n")
	}
	return b.String()
}

func renderYears(years []pipeline.YearSummary) string {
	rows := make([][]string, 0, len(years))
	for i, y := range years {
		annual, diff, change := "-", "-", "-"
		if y.Settled {
			annual = cli.FormatMoney(y.AnnualTax)
			diff = cli.FormatSignedMoney(y.Discrepancy)
		}
		if i > 0 {
			change = cli.FormatDelta(y.Net, years[i-1].Net)
		}
		rows = append(rows, []string{
			strconv.Itoa(y.FirstMonth) + "-" + strconv.Itoa(y.LastMonth),
			cli.FormatMoney(y.OfficialProfit),
			cli.FormatMoney(y.Tax),
			annual,
			diff,
			cli.FormatMoney(y.Net),
			change,
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   "Tax years",
		Headers: []string{"Months", "Official profit", "Provisional", "Annual", "Difference", "Net", "vs prior"},
		Rows:    rows,
	})
}
