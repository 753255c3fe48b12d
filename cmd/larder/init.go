// Init command: create the database and bring the schema up to date.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the larder storage",
	Long:  `Init creates the data directory and database file and applies all schema migrations.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("init", err)
		}
		defer backend.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			fail("init", err)
		}
		fmt.Println("Larder initialized at", dataDir)
		return nil
	},
}
