// Waste and processed commands retire items by status.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var wasteCmd = &cobra.Command{
	Use:   "waste <id>",
	Short: "Mark an item as thrown away",
	Long: `Waste retires the whole remaining quantity of an item as waste.
The quantity is kept on the record so waste-cost reports can weigh it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("waste", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail("waste", err)
		}
		defer backend.Detach()

		item, err := backend.MarkWaste(id)
		if err != nil {
			fail("waste", err)
		}

		if flagJSON {
			printJSON(item)
			return nil
		}
		fmt.Printf("Marked item %d as waste: %s (%.2f%s)\n", item.ID, item.ItemName, item.Quantity, item.Unit)
		return nil
	},
}

var processedCmd = &cobra.Command{
	Use:   "processed <id>",
	Short: "Mark an item as processed into something else",
	Long: `Processed retires an item that was turned into a prepared dish
or another derived item rather than eaten or discarded.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("processed", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail("processed", err)
		}
		defer backend.Detach()

		item, err := backend.MarkProcessed(id)
		if err != nil {
			fail("processed", err)
		}

		if flagJSON {
			printJSON(item)
			return nil
		}
		fmt.Printf("Marked item %d as processed: %s\n", item.ID, item.ItemName)
		return nil
	},
}
