package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/studioplan/internal/cli"
	"github.com/theirongolddev/studioplan/internal/model"
	"github.com/theirongolddev/studioplan/internal/pipeline"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Defaults for a newly added trainer.
const (
	defaultTrainerType     = model.TrainerFreelance
	defaultMonthlyLessons  = 20
	defaultCancellations   = 1
	defaultStudentCount    = 5
	defaultMonthlyGroupHrs = 0
)

var (
	flagTrainerName     string
	flagTrainerType     string
	flagTrainerLessons  float64
	flagTrainerGroup    float64
	flagTrainerCancel   float64
	flagTrainerStudents float64
	flagTrainerForm     bool
)

var trainersCmd = &cobra.Command{
	Use:     "trainers",
	Aliases: []string{"roster"},
	Short:   "List and edit the trainer roster",
	Args:    cobra.NoArgs,
	RunE:    runTrainersList,
}

var trainersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trainers with their typical month",
	Args:  cobra.NoArgs,
	RunE:  runTrainersList,
}

var trainersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a trainer",
	Args:  cobra.NoArgs,
	RunE:  runTrainersAdd,
}

var trainersRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a trainer by ID",
	Args:    cobra.ExactArgs(1),
	RunE:    runTrainersRemove,
}

var trainersSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Change fields of a trainer",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrainersSet,
}

func init() {
	for _, c := range []*cobra.Command{trainersAddCmd, trainersSetCmd} {
		c.Flags().StringVar(&flagTrainerName, "name", "", "Display name")
		c.Flags().StringVar(&flagTrainerType, "type", string(defaultTrainerType), "salary, freelance or owner")
		c.Flags().Float64Var(&flagTrainerLessons, "lessons", defaultMonthlyLessons, "Booked individual lessons per month")
		c.Flags().Float64Var(&flagTrainerGroup, "group", defaultMonthlyGroupHrs, "Group lessons per month")
		c.Flags().Float64Var(&flagTrainerCancel, "cancellations", defaultCancellations, "Cancelled lessons per week")
		c.Flags().Float64Var(&flagTrainerStudents, "students", defaultStudentCount, "Regular students")
	}
	trainersAddCmd.Flags().BoolVar(&flagTrainerForm, "form", false, "Fill the trainer in with an interactive form")

	trainersCmd.AddCommand(trainersListCmd, trainersAddCmd, trainersRemoveCmd, trainersSetCmd)
	rootCmd.AddCommand(trainersCmd)
}

func runTrainersList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc := cfg.Scenario()

	if len(sc.Trainers) == 0 {
		fmt.Println("\n  No trainers on the roster.")
		fmt.Println("  Add one with `studioplan trainers add`.")
		return nil
	}

	rows := make([][]string, 0, len(sc.Trainers))
	for _, tm := range pipeline.TrainerEstimates(sc) {
		t := tm.Trainer
		rows = append(rows, []string{
			t.ID,
			t.Name,
			string(t.Type),
			cli.FormatVolume(t.MonthlyLessons),
			cli.FormatVolume(t.WeeklyCancellations),
			cli.FormatVolume(tm.Lessons),
			cli.FormatVolume(tm.GroupLessons),
			tm.EarningsLabel() + " " + cli.FormatMoney(tm.Cost),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Type", "Booked", "Cancel/wk", "Realized", "Group", "Cost"},
		Rows:    rows,
	}))
	return nil
}

func runTrainersAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t := model.Trainer{
		ID:                  uuid.NewString(),
		Name:                fmt.Sprintf("Trainer %d", len(cfg.Trainers)+1),
		Type:                model.TrainerType(flagTrainerType),
		StudentCount:        flagTrainerStudents,
		MonthlyLessons:      flagTrainerLessons,
		MonthlyGroupLessons: flagTrainerGroup,
		WeeklyCancellations: flagTrainerCancel,
	}
	if cmd.Flags().Changed("name") {
		t.Name = flagTrainerName
	}

	if flagTrainerForm {
		if t, err = trainerForm(t); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("\n  Cancelled, roster unchanged.")
				return nil
			}
			return err
		}
	}

	cfg.Trainers = model.AddTrainer(cfg.Trainers, t)
	if err := pipeline.Validate(cfg.Scenario()); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}

	log.WithField("id", t.ID).Debug("added trainer")
	fmt.Printf("  Added %s (%s)\n", t.Name, t.ID)
	return nil
}

func runTrainersRemove(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id := args[0]
	if model.FindTrainer(cfg.Trainers, id) < 0 {
		return fmt.Errorf("no trainer with id %q", id)
	}
	cfg.Trainers = model.RemoveTrainer(cfg.Trainers, id)
	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("  Removed %s\n", id)
	return nil
}

func runTrainersSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	i := model.FindTrainer(cfg.Trainers, args[0])
	if i < 0 {
		return fmt.Errorf("no trainer with id %q", args[0])
	}
	t := cfg.Trainers[i]

	f := cmd.Flags()
	if f.Changed("name") {
		t.Name = flagTrainerName
	}
	if f.Changed("type") {
		t.Type = model.TrainerType(flagTrainerType)
	}
	if f.Changed("lessons") {
		t.MonthlyLessons = flagTrainerLessons
	}
	if f.Changed("group") {
		t.MonthlyGroupLessons = flagTrainerGroup
	}
	if f.Changed("cancellations") {
		t.WeeklyCancellations = flagTrainerCancel
	}
	if f.Changed("students") {
		t.StudentCount = flagTrainerStudents
	}

	cfg.Trainers, _ = model.ReplaceTrainer(cfg.Trainers, t)
	if err := pipeline.Validate(cfg.Scenario()); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("  Updated %s\n", t.Name)
	return nil
}

// trainerForm lets the user edit t field by field.
func trainerForm(t model.Trainer) (model.Trainer, error) {
	typ := string(t.Type)
	var fields amountFields

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&t.Name),
		huh.NewSelect[string]().
			Title("Compensation").
			Options(
				huh.NewOption("Salary (fixed + per lesson)", string(model.TrainerSalary)),
				huh.NewOption("Freelance (revenue share)", string(model.TrainerFreelance)),
				huh.NewOption("Owner (contribution only)", string(model.TrainerOwner)),
			).
			Value(&typ),
		fields.input("Booked lessons per month", &t.MonthlyLessons),
		fields.input("Group lessons per month", &t.MonthlyGroupLessons),
		fields.input("Cancellations per week", &t.WeeklyCancellations),
		fields.input("Regular students", &t.StudentCount),
	).Title("Trainer " + strconv.Quote(t.Name)))

	if err := form.Run(); err != nil {
		return t, err
	}
	if err := fields.apply(); err != nil {
		return t, err
	}
	t.Type = model.TrainerType(typ)
	return t, nil
}
