package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/studioplan/internal/model"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	t.Setenv("STUDIOPLAN_MONTHS", "")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Simulation.Months != 12 || cfg.Income.PackagePrice != 10000 {
		t.Fatalf("unexpected defaults: %+v", cfg.Simulation)
	}
	if len(cfg.Trainers) != 1 {
		t.Fatalf("default roster len = %d, want 1", len(cfg.Trainers))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("STUDIOPLAN_MONTHS", "")
	path := filepath.Join(t.TempDir(), "sub", "scenario.toml")

	cfg := DefaultConfig()
	cfg.Simulation = model.Window{Months: 24, StartMonth: 6}
	cfg.Trainers = model.AddTrainer(cfg.Trainers, model.Trainer{
		ID: "t-2", Name: "Freelancer", Type: model.TrainerFreelance, MonthlyLessons: 20, MonthlyGroupLessons: 8,
	})
	cfg.Tax.SettlementPolicy = model.SettlementApply

	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if got.Simulation != cfg.Simulation {
		t.Errorf("Simulation = %+v, want %+v", got.Simulation, cfg.Simulation)
	}
	if len(got.Trainers) != 2 || got.Trainers[1].Type != model.TrainerFreelance {
		t.Errorf("Trainers = %+v", got.Trainers)
	}
	if got.Tax.SettlementPolicy != model.SettlementApply {
		t.Errorf("SettlementPolicy = %q, want apply", got.Tax.SettlementPolicy)
	}
	last := got.Tax.Brackets[len(got.Tax.Brackets)-1]
	if !math.IsInf(last.Upper, 1) {
		t.Errorf("last bracket upper = %v, want +Inf", last.Upper)
	}
}

func TestLoadFile_EmptyRosterStaysEmpty(t *testing.T) {
	t.Setenv("STUDIOPLAN_MONTHS", "")
	path := filepath.Join(t.TempDir(), "scenario.toml")

	cfg := DefaultConfig()
	cfg.Trainers = nil
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got.Trainers) != 0 {
		t.Fatalf("Trainers = %+v, want none", got.Trainers)
	}
}

func TestLoadFile_FillsTaxDefaults(t *testing.T) {
	t.Setenv("STUDIOPLAN_MONTHS", "")
	path := filepath.Join(t.TempDir(), "scenario.toml")
	data := `
[simulation]
months = 6
start_month = 3

[income]
package_price = 8000
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Tax.ProvisionalRate != DefaultProvisionalRate || cfg.Tax.OwnerContribution != DefaultOwnerContribution {
		t.Errorf("tax defaults not filled: %+v", cfg.Tax)
	}
	if len(cfg.Tax.Brackets) != len(DefaultTaxBrackets) {
		t.Errorf("brackets len = %d, want %d", len(cfg.Tax.Brackets), len(DefaultTaxBrackets))
	}
	if cfg.Income.PackagePrice != 8000 || cfg.Simulation.StartMonth != 3 {
		t.Errorf("file values not applied: %+v %+v", cfg.Income, cfg.Simulation)
	}
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("STUDIOPLAN_MONTHS", "60")
	t.Setenv("STUDIOPLAN_THEME", "tokyo-night")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Simulation.Months != 60 {
		t.Errorf("Months = %d, want 60", cfg.Simulation.Months)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q, want tokyo-night", cfg.Appearance.Theme)
	}
}

func TestLoadFile_BadEnvOverride(t *testing.T) {
	t.Setenv("STUDIOPLAN_MONTHS", "twelve")

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected an error for a non-numeric STUDIOPLAN_MONTHS")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnvFile(filepath.Join(dir, "absent.env")); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STUDIOPLAN_THEME=terminal\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STUDIOPLAN_THEME", "")
	os.Unsetenv("STUDIOPLAN_THEME")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("STUDIOPLAN_THEME"); got != "terminal" {
		t.Errorf("STUDIOPLAN_THEME = %q, want terminal", got)
	}
}

func TestScenarioYAMLRoundTrip(t *testing.T) {
	t.Setenv("STUDIOPLAN_MONTHS", "")
	path := filepath.Join(t.TempDir(), "plan.yaml")
	sc := DefaultConfig().Scenario()
	sc.Income.POSRate = 3.2

	if err := ExportScenario(path, sc); err != nil {
		t.Fatalf("ExportScenario: %v", err)
	}
	got, err := ImportScenario(path)
	if err != nil {
		t.Fatalf("ImportScenario: %v", err)
	}
	if got.Income.POSRate != 3.2 {
		t.Errorf("POSRate = %v, want 3.2", got.Income.POSRate)
	}
	if len(got.Trainers) != 1 || got.Trainers[0].ID != "trainer-1" {
		t.Errorf("Trainers = %+v", got.Trainers)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(yaml): %v", err)
	}
	if cfg.Income.POSRate != 3.2 {
		t.Errorf("LoadFile(yaml) POSRate = %v, want 3.2", cfg.Income.POSRate)
	}
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if Exists(path) {
		t.Fatal("Exists before save")
	}
	if err := SaveFile(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if !Exists(path) {
		t.Error("Exists after save = false")
	}
}
