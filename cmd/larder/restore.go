// Restore command corrects the recorded quantity of an item.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <id> <quantity>",
	Short: "Correct the quantity of an in-stock item",
	Long: `Restore sets the quantity of an in_stock item, for manual fixes
after a miscount. No other field changes.

Example:
  larder restore 12 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("restore", err)
		}
		quantity, err := parseQuantity(args[1])
		if err != nil {
			fail("restore", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail("restore", err)
		}
		defer backend.Detach()

		item, err := backend.Restore(id, quantity)
		if err != nil {
			fail("restore", err)
		}

		if flagJSON {
			printJSON(item)
			return nil
		}
		fmt.Printf("Restored item %d to %.2f%s: %s\n", item.ID, item.Quantity, item.Unit, item.ItemName)
		return nil
	},
}
