// Relocate command moves an item between storage locations.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var relocateCmd = &cobra.Command{
	Use:   "relocate <id> <location>",
	Short: "Move an item to another storage location",
	Long: `Relocate moves an in_stock item to another location, e.g. from
the fridge to the freezer. Retired items cannot be moved.

Example:
  larder relocate 12 freezer`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("relocate", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail("relocate", err)
		}
		defer backend.Detach()

		item, err := backend.Relocate(id, args[1])
		if err != nil {
			fail("relocate", err)
		}

		if flagJSON {
			printJSON(item)
			return nil
		}
		fmt.Printf("Moved item %d to %s: %s\n", item.ID, item.Location, item.ItemName)
		return nil
	},
}
