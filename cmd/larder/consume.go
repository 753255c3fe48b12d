// Consume command records consumption, splitting the record when only
// part of the quantity is used.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var consumeCmd = &cobra.Command{
	Use:   "consume <id> <amount>",
	Short: "Consume some or all of an item",
	Long: `Consume records that amount of an item was used up.

Consuming the full quantity retires the record as consumed. Consuming
part of it splits the record: the original becomes the consumed portion
and a new in_stock child carries the remainder.

Example:
  larder consume 17 0.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("consume", err)
		}
		amount, err := parseQuantity(args[1])
		if err != nil {
			fail("consume", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail("consume", err)
		}
		defer backend.Detach()

		result, err := backend.Consume(id, amount)
		if err != nil {
			fail("consume", err)
		}

		if flagJSON {
			printJSON(result)
			return nil
		}

		if result.Remainder == nil {
			fmt.Printf("Consumed item %d: %s (all of it)\n", result.Consumed.ID, result.Consumed.ItemName)
			return nil
		}
		fmt.Printf("Consumed %.2f%s of item %d: %s\n",
			result.Consumed.Quantity, result.Consumed.Unit, result.Consumed.ID, result.Consumed.ItemName)
		fmt.Printf("Remainder is item %d: %.2f%s @ %s\n",
			result.Remainder.ID, result.Remainder.Quantity, result.Remainder.Unit, result.Remainder.Location)
		return nil
	},
}
