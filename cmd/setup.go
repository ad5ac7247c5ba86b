package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"
	"github.com/theirongolddev/studioplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Scenario setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// amountField ties a text input to the float it edits.
type amountField struct {
	text string
	dst  *float64
}

type amountFields []*amountField

func (fs *amountFields) input(title string, dst *float64) *huh.Input {
	f := &amountField{text: plainAmount(*dst), dst: dst}
	*fs = append(*fs, f)
	return huh.NewInput().
		Title(title).
		Value(&f.text).
		Validate(validateAmount)
}

// apply parses every field into its destination.
func (fs amountFields) apply() error {
	for _, f := range fs {
		v, err := cli.ParseAmount(f.text)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// plainAmount prefills a field with a comma decimal so ParseAmount never
// reads the fraction as a thousands group.
func plainAmount(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

func validateAmount(s string) error {
	_, err := cli.ParseAmount(s)
	return err
}

func horizonOptions(current int) []huh.Option[int] {
	presets := model.HorizonPresets
	if !slices.Contains(presets, current) && current > 0 {
		presets = append(slices.Clone(presets), current)
		slices.Sort(presets)
	}
	opts := make([]huh.Option[int], 0, len(presets))
	for _, n := range presets {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d months", n), n))
	}
	return opts
}

func monthOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, 12)
	for m := 1; m <= 12; m++ {
		opts = append(opts, huh.NewOption(pipeline.MonthName(m), m))
	}
	return opts
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var fields amountFields
	policy := string(cfg.Tax.SettlementPolicy)
	themeName := cfg.Appearance.Theme
	if _, ok := theme.Lookup(themeName); !ok {
		themeName = theme.FlexokiDark.Name
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Projection horizon").
				Options(horizonOptions(cfg.Simulation.Months)...).
				Value(&cfg.Simulation.Months),
			huh.NewSelect[int]().
				Title("First month").
				Options(monthOptions()...).
				Value(&cfg.Simulation.StartMonth),
			huh.NewSelect[string]().
				Title("December tax settlement").
				Description("report: show the difference only; apply: charge it to the balance").
				Options(huh.NewOptions(string(model.SettlementReport), string(model.SettlementApply))...).
				Value(&policy),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&themeName),
		).Title("Simulation"),

		huh.NewGroup(
			fields.input("Rent (net)", &cfg.Expenses.Rent),
			fields.input("Staff fixed cost", &cfg.Expenses.StaffFixedCost),
			fields.input("Staff fee per lesson", &cfg.Expenses.StaffPerLesson),
			fields.input("Staff fee per group lesson", &cfg.Expenses.StaffGroupLesson),
			fields.input("Freelance share (%)", &cfg.Expenses.FreelancePercentage),
			fields.input("Freelance fee per group lesson", &cfg.Expenses.FreelanceGroupLesson),
		).Title("Staff and rent"),

		huh.NewGroup(
			fields.input("Electricity", &cfg.Expenses.Electricity),
			fields.input("Water", &cfg.Expenses.Water),
			fields.input("Gas", &cfg.Expenses.Gas),
			fields.input("Amenities", &cfg.Expenses.Amenities),
			fields.input("Cleaning", &cfg.Expenses.Cleaning),
			fields.input("Subscriptions", &cfg.Expenses.Subscriptions),
			fields.input("Accountant", &cfg.Expenses.Accountant),
		).Title("Monthly bills"),

		huh.NewGroup(
			fields.input("Architecture", &cfg.Startup.Architecture),
			fields.input("Equipment", &cfg.Startup.Equipment),
			fields.input("Fixtures", &cfg.Startup.Fixtures),
			fields.input("Stations", &cfg.Startup.StationCount),
			fields.input("Price per station", &cfg.Startup.StationPrice),
		).Title("Startup"),

		huh.NewGroup(
			fields.input("Package price (10 lessons)", &cfg.Income.PackagePrice),
			fields.input("Group package price", &cfg.Income.GroupPackagePrice),
			fields.input("Cash share, individual (%)", &cfg.Income.CashRatio),
			fields.input("Cash share, group (%)", &cfg.Income.GroupCashRatio),
			fields.input("POS rate (%)", &cfg.Income.POSRate),
		).Title("Income"),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("\n  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := fields.apply(); err != nil {
		return err
	}
	cfg.Tax.SettlementPolicy = model.SettlementPolicy(policy)
	cfg.Appearance.Theme = themeName

	if err := pipeline.Validate(cfg.Scenario()); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", scenarioPath())
	fmt.Println("  Run `studioplan trainers add` to build the roster.")
	fmt.Println()
	return nil
}
