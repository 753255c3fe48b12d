// List command prints inventory items, optionally filtered.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	listStatus   string
	listLocation string
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory items",
	Long: `List prints items ordered by ID, newest last. Filters narrow the
result by status, location, or category.

Examples:
  larder list
  larder list --status in_stock --location fridge
  larder list --category dairy --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("list", err)
		}
		defer backend.Detach()

		items, err := backend.List(types.ListFilter{
			Status:   listStatus,
			Location: listLocation,
			Category: listCategory,
		})
		if err != nil {
			fail("list", err)
		}

		if flagJSON {
			printJSON(items)
			return nil
		}
		printItems(items)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (in_stock, consumed, processed, waste)")
	listCmd.Flags().StringVar(&listLocation, "location", "", "filter by storage location")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by category")
}
