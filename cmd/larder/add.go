// Add command creates a new inventory item.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	addName     string
	addCategory string
	addLocation string
	addQuantity float64
	addUnit     string
	addExpires  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new item to the inventory",
	Long: `Add records a new in_stock item.

Example:
  larder add --name "Jasmine Rice" --location pantry --quantity 2 --unit kg
  larder add --name Milk --location fridge --expires 2026-09-05 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var expire *time.Time
		if addExpires != "" {
			d, err := parseDate(addExpires)
			if err != nil {
				fail("add", err)
			}
			expire = &d
		}

		backend, err := attachBackend()
		if err != nil {
			fail("add", err)
		}
		defer backend.Detach()

		created, err := backend.Create(types.NewItem{
			ItemName:   addName,
			Category:   addCategory,
			Location:   addLocation,
			Quantity:   addQuantity,
			Unit:       addUnit,
			ExpireDate: expire,
		})
		if err != nil {
			fail("add", err)
		}

		if flagJSON {
			printJSON(created)
		} else {
			fmt.Printf("Added item %d: %s (%.2f%s @ %s)\n",
				created.ID, created.ItemName, created.Quantity, created.Unit, created.Location)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "item name (required)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "item category (e.g. Grain, Dairy, Meat)")
	addCmd.Flags().StringVar(&addLocation, "location", "", "storage location: fridge, freezer, or pantry (required)")
	addCmd.Flags().Float64Var(&addQuantity, "quantity", 1.0, "quantity")
	addCmd.Flags().StringVar(&addUnit, "unit", "", "unit (kg, L, pcs)")
	addCmd.Flags().StringVar(&addExpires, "expires", "", "best-before date (YYYY-MM-DD)")

	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("location")
}
