package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/studioplan/internal/model"

	"gopkg.in/yaml.v3"
)

// ExportScenario writes sc as YAML for sharing outside the config dir.
func ExportScenario(path string, sc model.Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

// ImportScenario reads a YAML scenario. Tax constants the file omits are
// filled from DefaultTaxRules.
func ImportScenario(path string) (model.Scenario, error) {
	var sc model.Scenario

	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied
	if err != nil {
		return sc, fmt.Errorf("reading scenario: %w", err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("parsing scenario: %w", err)
	}
	fillTaxDefaults(&sc.Tax)
	return sc, nil
}

// IsYAML reports whether path names a YAML scenario.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
