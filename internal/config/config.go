// Package config loads and saves the studioplan scenario file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/studioplan/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the scenario and UI preferences stored in scenario.toml.
type Config struct {
	Appearance AppearanceConfig   `toml:"appearance"`
	Simulation model.Window       `toml:"simulation"`
	Expenses   model.Expenses     `toml:"expenses"`
	Startup    model.StartupCosts `toml:"startup"`
	Income     model.Income       `toml:"income"`
	Tax        model.TaxRules     `toml:"tax"`
	Trainers   []model.Trainer    `toml:"trainers"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the starter scenario: one salaried trainer in a
// four-reformer studio.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Simulation: model.Window{
			Months:     12,
			StartMonth: 1,
		},
		Expenses: model.Expenses{
			StaffFixedCost:       40214.03,
			StaffPerLesson:       150,
			StaffGroupLesson:     250,
			FreelancePercentage:  40,
			FreelanceGroupLesson: 250,
			Rent:                 20000,
			Electricity:          3000,
			Water:                1000,
			Gas:                  1500,
			Amenities:            2000,
			Cleaning:             3000,
			Subscriptions:        1000,
			Accountant:           2000,
		},
		Startup: model.StartupCosts{
			Architecture: 200000,
			Equipment:    500000,
			Fixtures:     100000,
			StationCount: 4,
			StationPrice: 60000,
		},
		Income: model.Income{
			PackagePrice:      10000,
			GroupPackagePrice: 3000,
			CashRatio:         50,
			GroupCashRatio:    50,
			POSRate:           2.5,
		},
		Tax: DefaultTaxRules(),
		Trainers: []model.Trainer{
			{
				ID:                  "trainer-1",
				Name:                "Trainer 1",
				Type:                model.TrainerSalary,
				StudentCount:        10,
				MonthlyLessons:      40,
				WeeklyCancellations: 1,
			},
		},
	}
}

// Scenario returns the per-run snapshot of the configured scenario.
func (c Config) Scenario() model.Scenario {
	sc := model.Scenario{
		Window:   c.Simulation,
		Expenses: c.Expenses,
		Startup:  c.Startup,
		Income:   c.Income,
		Tax:      c.Tax,
		Trainers: c.Trainers,
	}
	return sc.Clone()
}

// SetScenario copies a scenario back into the config.
func (c *Config) SetScenario(sc model.Scenario) {
	sc = sc.Clone()
	c.Simulation = sc.Window
	c.Expenses = sc.Expenses
	c.Startup = sc.Startup
	c.Income = sc.Income
	c.Tax = sc.Tax
	c.Trainers = sc.Trainers
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "studioplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "studioplan")
}

// ConfigPath returns the full path to the default scenario file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "scenario.toml")
}

// LoadFile reads a scenario file from path. A missing TOML file yields
// defaults; .yaml and .yml paths are read with ImportScenario.
// Statutory tax constants missing from the file are filled from
// DefaultTaxRules, then environment overrides are applied.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if IsYAML(path) {
		sc, err := ImportScenario(path)
		if err != nil {
			return cfg, err
		}
		cfg.SetScenario(sc)
		err = applyEnv(&cfg)
		return cfg, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			err = applyEnv(&cfg)
			return cfg, err
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// A file owns its roster and tax table outright; neither merges with
	// the defaults.
	cfg.Trainers = nil
	cfg.Tax.Brackets = nil
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	fillTaxDefaults(&cfg.Tax)

	err = applyEnv(&cfg)
	return cfg, err
}

// fillTaxDefaults restores statutory constants left at zero. A zero rate is
// never a meaningful override for these.
func fillTaxDefaults(t *model.TaxRules) {
	def := DefaultTaxRules()
	if len(t.Brackets) == 0 {
		t.Brackets = def.Brackets
	}
	if t.ProvisionalRate == 0 {
		t.ProvisionalRate = def.ProvisionalRate
	}
	if t.OwnerContribution == 0 {
		t.OwnerContribution = def.OwnerContribution
	}
	if t.CashDiscount == 0 {
		t.CashDiscount = def.CashDiscount
	}
	if t.VATRate == 0 {
		t.VATRate = def.VATRate
	}
	if t.RentWithholding == 0 {
		t.RentWithholding = def.RentWithholding
	}
	if t.SettlementPolicy == "" {
		t.SettlementPolicy = def.SettlementPolicy
	}
}

// envOverrides are the environment variables that override the file.
type envOverrides struct {
	Theme  string `env:"STUDIOPLAN_THEME"`
	Months int    `env:"STUDIOPLAN_MONTHS"`
}

// applyEnv applies environment variable overrides. Non-positive horizons
// are ignored.
func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if o.Theme != "" {
		cfg.Appearance.Theme = o.Theme
	}
	if o.Months > 0 {
		cfg.Simulation.Months = o.Months
	}
	return nil
}

// EnvPath returns the optional env file read before the environment.
func EnvPath() string {
	return filepath.Join(ConfigDir(), ".env")
}

// LoadEnvFile exports the variables of the env file at path that are not
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading env file: %w", err)
	}
	return nil
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a scenario file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
