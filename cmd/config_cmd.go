package cmd

import (
	"fmt"
	"math"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current scenario",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := scenarioPath()
	fmt.Printf("  Scenario file: %s\n", path)
	if config.Exists(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no scenario file)")
	}
	fmt.Println()

	section := func(name string, pairs [][2]string) {
		fmt.Printf("  [%s]\n", name)
		fmt.Print(cli.RenderKeyValues(pairs))
		fmt.Println()
	}

	section("Simulation", [][2]string{
		{"Months", fmt.Sprint(cfg.Simulation.Months)},
		{"Start month", fmt.Sprint(cfg.Simulation.StartMonth)},
		{"Theme", cfg.Appearance.Theme},
	})

	e := cfg.Expenses
	section("Expenses", [][2]string{
		{"Rent (net)", cli.FormatMoney(e.Rent)},
		{"Staff fixed cost", cli.FormatMoney(e.StaffFixedCost)},
		{"Staff per lesson", cli.FormatMoney(e.StaffPerLesson)},
		{"Staff per group lesson", cli.FormatMoney(e.StaffGroupLesson)},
		{"Freelance share", cli.FormatRate(e.FreelancePercentage)},
		{"Freelance per group lesson", cli.FormatMoney(e.FreelanceGroupLesson)},
		{"Utilities", cli.FormatMoney(e.Electricity + e.Water + e.Gas)},
		{"Amenities + cleaning", cli.FormatMoney(e.Amenities + e.Cleaning)},
		{"Subscriptions", cli.FormatMoney(e.Subscriptions)},
		{"Accountant", cli.FormatMoney(e.Accountant)},
	})

	sc := cfg.Scenario()
	section("Startup", [][2]string{
		{"Architecture", cli.FormatMoney(cfg.Startup.Architecture)},
		{"Equipment", cli.FormatMoney(cfg.Startup.Equipment)},
		{"Fixtures", cli.FormatMoney(cfg.Startup.Fixtures)},
		{"Stations", fmt.Sprintf("%s x %s", cli.FormatVolume(cfg.Startup.StationCount), cli.FormatMoney(cfg.Startup.StationPrice))},
		{"Rent deposit + fee", cli.FormatMoney(sc.RentStartupCost())},
		{"Total", cli.FormatMoney(sc.TotalStartupCost())},
	})

	in := cfg.Income
	section("Income", [][2]string{
		{"Package price", cli.FormatMoney(in.PackagePrice)},
		{"Group package price", cli.FormatMoney(in.GroupPackagePrice)},
		{"Cash share", fmt.Sprintf("%s individual, %s group", cli.FormatRate(in.CashRatio), cli.FormatRate(in.GroupCashRatio))},
		{"POS rate", cli.FormatRate(in.POSRate)},
	})

	tx := cfg.Tax
	pairs := [][2]string{
		{"Provisional rate", fractionRate(tx.ProvisionalRate)},
		{"Owner contribution", cli.FormatMoney(tx.OwnerContribution)},
		{"Cash discount", fractionRate(tx.CashDiscount)},
		{"VAT", fractionRate(tx.VATRate)},
		{"Rent withholding", fractionRate(tx.RentWithholding)},
		{"Settlement", string(tx.SettlementPolicy)},
	}
	for _, b := range tx.Brackets {
		upper := "above"
		if !math.IsInf(b.Upper, 1) {
			upper = "up to " + cli.FormatMoneyWhole(b.Upper)
		}
		pairs = append(pairs, [2]string{"Bracket " + upper, fractionRate(b.Rate)})
	}
	section("Tax", pairs)

	fmt.Printf("  Trainers: %d (see `studioplan trainers list`)\n", len(cfg.Trainers))
	fmt.Println("  Run `studioplan setup` to reconfigure.")
	return nil
}

// fractionRate formats a 0-1 rate as a percentage, e.g. 0.27 -> "27%".
func fractionRate(f float64) string {
	return cli.FormatRate(math.Round(f*1000) / 10)
}
