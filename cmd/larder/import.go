// Import command loads a batch of items from a JSON file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from a JSON file",
	Long: `Import loads a JSON array of item records in one transaction. If
any record is invalid the whole batch is rejected. Each batch gets an
audit row with a fresh batch ID.

Record fields: item_name (required), location (required), category,
quantity (default 1), unit, expire_date (YYYY-MM-DD), status (default
in_stock), parent_id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("import", err)
		}
		defer backend.Detach()

		result, err := backend.ImportItems(args[0])
		if err != nil {
			fail("import", err)
		}

		if flagJSON {
			printJSON(result)
			return nil
		}
		fmt.Printf("Imported %d items from %s (batch %s)\n", result.Imported, result.Source, result.BatchID)
		return nil
	},
}
