// Migrate command brings the schema up to date explicitly.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date",
	Long: `Migrate applies any pending schema migrations. Attaching already
migrates on every run, so this exists for scripted upgrades where a
clean exit should confirm the schema is current.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("migrate", err)
		}
		defer backend.Detach()

		fmt.Println("Schema is up to date.")
		return nil
	},
}
