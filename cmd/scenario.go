package cmd

import (
	"fmt"

	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/pipeline"

	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Exchange scenarios as YAML",
}

var scenarioExportCmd = &cobra.Command{
	Use:   "export <path.yaml>",
	Short: "Write the current scenario to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioExport,
}

var scenarioImportCmd = &cobra.Command{
	Use:   "import <path.yaml>",
	Short: "Replace the current scenario with a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioImport,
}

func init() {
	scenarioCmd.AddCommand(scenarioExportCmd, scenarioImportCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioExport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.ExportScenario(args[0], cfg.Scenario()); err != nil {
		return err
	}
	fmt.Printf("  Exported scenario to %s\n", args[0])
	return nil
}

func runScenarioImport(_ *cobra.Command, args []string) error {
	sc, err := config.ImportScenario(args[0])
	if err != nil {
		return err
	}
	if err := pipeline.Validate(sc); err != nil {
		log.WithError(err).WithField("path", args[0]).Warn("imported scenario is invalid")
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.SetScenario(sc)
	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("  Imported %s into %s\n", args[0], scenarioPath())
	return nil
}
