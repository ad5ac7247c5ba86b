// Package cmd implements the studioplan CLI commands.
package cmd

import (
	"os"

	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagMonths     int
	flagStartMonth int
	flagScenario   string
	flagQuiet      bool
	flagVerbose    bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "studioplan",
	Short: "Financial projections for a reformer studio",
	Long: "Project monthly revenue, trainer costs, tax and cash balance for a\n" +
		"fitness studio, either in one batch or month by month.",
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	RunE:              runProject,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "n", 0, "Projection horizon in months (default from scenario)")
	rootCmd.PersistentFlags().IntVarP(&flagStartMonth, "start-month", "s", 0, "Calendar month of the first step, 1-12 (default from scenario)")
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "f", "", "Scenario file, TOML or YAML (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	addProjectFlags(rootCmd)
}

// preRun loads the optional env file, then configures logging from it.
func preRun(_ *cobra.Command, _ []string) error {
	envErr := config.LoadEnvFile(config.EnvPath())
	setupLogger()
	if envErr != nil {
		log.WithError(envErr).Warn("ignoring env file")
	}
	return nil
}

// setupLogger configures the shared logger. LOG_LEVEL sets the level;
// --verbose and --quiet override it.
func setupLogger() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.WarnLevel
	}
	switch {
	case flagQuiet:
		level = logrus.ErrorLevel
	case flagVerbose:
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
}

// scenarioPath returns the file named by --scenario or the default
// scenario file.
func scenarioPath() string {
	if flagScenario != "" {
		return flagScenario
	}
	return config.ConfigPath()
}

// loadConfig reads the scenario file.
func loadConfig() (config.Config, error) {
	path := scenarioPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}

	if !config.Exists(path) {
		log.WithField("path", path).Debug("no scenario file, using defaults")
	} else {
		log.WithField("path", path).Debug("loaded scenario")
	}
	return cfg, nil
}

// saveConfig writes cfg back to the scenario file in that file's format.
func saveConfig(cfg config.Config) error {
	path := scenarioPath()
	var err error
	if config.IsYAML(path) {
		err = config.ExportScenario(path, cfg.Scenario())
	} else {
		err = config.SaveFile(path, cfg)
	}
	if err != nil {
		return err
	}
	log.WithField("path", path).Debug("saved scenario")
	return nil
}

// loadScenario reads the scenario and applies --months and --start-month.
func loadScenario(cmd *cobra.Command) (model.Scenario, error) {
	cfg, err := loadConfig()
	if err != nil {
		return model.Scenario{}, err
	}

	sc := cfg.Scenario()
	if cmd.Flags().Changed("months") {
		sc.Window.Months = flagMonths
	}
	if cmd.Flags().Changed("start-month") {
		sc.Window.StartMonth = flagStartMonth
	}

	log.WithFields(logrus.Fields{
		"months":      sc.Window.Months,
		"start_month": sc.Window.StartMonth,
		"trainers":    len(sc.Trainers),
		"policy":      sc.Tax.SettlementPolicy,
	}).Debug("scenario ready")
	return sc, nil
}
