// Root command for the larder CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/paths"
	"github.com/mesh-intelligence/larder/pkg/larder"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all
// subcommands can use them.
var (
	configDataDir        string
	configExtraLocations []string
	configThresholds     thresholdsConfig
)

var rootCmd = &cobra.Command{
	Use:   "larder",
	Short: "Larder is a household food inventory ledger",
	Long: `Larder tracks what food is in the fridge, freezer, and pantry:
what came in, what was eaten, what was thrown away, and what is about
to expire. Items are never deleted; they are retired by status, and
partial consumption splits a record into linked parent and child rows.`,
	Version: larder.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configExtraLocations = cfg.GetStringSlice(cfgKeyExtraLocations)

		configThresholds, err = loadThresholds(configDir)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(consumeCmd)
	rootCmd.AddCommand(wasteCmd)
	rootCmd.AddCommand(processedCmd)
	rootCmd.AddCommand(relocateCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(expiringCmd)
	rootCmd.AddCommand(shortfallCmd)
	rootCmd.AddCommand(wastecostCmd)
	rootCmd.AddCommand(migrateCmd)
}

// resolveDataDir returns the data directory path following the
// precedence: --data-dir flag > config.yaml data_dir > LARDER_DATA_DIR
// env > platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > LARDER_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
