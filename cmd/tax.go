package cmd

import (
	"fmt"
	"math"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/config"

	"github.com/spf13/cobra"
)

var taxCmd = &cobra.Command{
	Use:   "tax <profit>",
	Short: "Annual income tax for a yearly profit",
	Long: "Compute the progressive annual income tax for a profit using the\n" +
		"scenario's bracket table. Amounts may use 1.000,50 or 1000.50 layout.",
	Args: cobra.ExactArgs(1),
	RunE: runTax,
}

func init() {
	rootCmd.AddCommand(taxCmd)
}

func runTax(_ *cobra.Command, args []string) error {
	profit, err := cli.ParseAmount(args[0])
	if err != nil {
		return fmt.Errorf("profit: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	brackets := cfg.Tax.Brackets
	if err := config.ValidateBrackets(brackets); err != nil {
		return err
	}

	total := config.TaxForProfit(brackets, profit)

	fmt.Println()
	fmt.Println(cli.RenderTitle("ANNUAL INCOME TAX  " + cli.FormatMoney(profit)))
	fmt.Println()

	slices := config.TaxBreakdown(brackets, profit)
	if len(slices) == 0 {
		fmt.Println("  No tax is due on a profit of zero or less.")
		return nil
	}

	rows := make([][]string, 0, len(slices))
	for _, s := range slices {
		upper := "and above"
		if !math.IsInf(s.Upper, 1) {
			upper = cli.FormatMoneyWhole(s.Upper)
		}
		rows = append(rows, []string{
			cli.FormatMoneyWhole(s.Lower) + " - " + upper,
			fractionRate(s.Rate),
			cli.FormatMoney(s.Taxable),
			cli.FormatMoney(s.Tax),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bracket", "Rate", "Taxed", "Tax"},
		Rows:    rows,
		Footer:  []string{"Total", fractionRate(total / profit), cli.FormatMoney(profit), cli.FormatMoney(total)},
	}))
	return nil
}
