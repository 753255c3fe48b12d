// Config loading for the larder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyExtraLocations = "locations.extra"

	defaultBackend = "sqlite"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Larder CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Extra storage locations beyond fridge/freezer/pantry
# locations:
#   extra: [counter]

# Minimum stock thresholds for the shortfall report
# thresholds:
#   items:
#     Milk: 1.0
#   categories:
#     Dairy: 2.0
`

// thresholdsConfig holds the minimum-stock configuration read from
// config.yaml. Threshold keys match item_name and category values
// exactly, case included.
type thresholdsConfig struct {
	items      map[string]float64
	categories map[string]float64
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// loadThresholds reads the thresholds block straight from config.yaml.
// Viper lower-cases every key it returns, which would make a threshold
// for "Milk" unmatchable against the stored item_name, so this block
// bypasses Viper and decodes the raw file with keys preserved.
func loadThresholds(configDir string) (thresholdsConfig, error) {
	data, err := os.ReadFile(filepath.Join(configDir, configFileExt))
	if err != nil {
		if os.IsNotExist(err) {
			return thresholdsConfig{}, nil
		}
		return thresholdsConfig{}, fmt.Errorf("read thresholds: %w", err)
	}

	var raw struct {
		Thresholds struct {
			Items      map[string]float64 `yaml:"items"`
			Categories map[string]float64 `yaml:"categories"`
		} `yaml:"thresholds"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return thresholdsConfig{}, fmt.Errorf("parse thresholds: %w", err)
	}

	return thresholdsConfig{
		items:      raw.Thresholds.Items,
		categories: raw.Thresholds.Categories,
	}, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file
// does not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
