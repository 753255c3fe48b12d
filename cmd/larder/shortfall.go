// Shortfall command reports stock below configured thresholds.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var shortfallCmd = &cobra.Command{
	Use:   "shortfall",
	Short: "Report stock below configured thresholds",
	Long: `Shortfall compares summed in_stock quantities against the
thresholds in config.yaml and reports what needs restocking.

Thresholds are configured per item name and per category:

  thresholds:
    items:
      milk: 2
    categories:
      vegetables: 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		thresholds := types.Thresholds{
			Items:      configThresholds.items,
			Categories: configThresholds.categories,
		}
		if thresholds.Empty() {
			fmt.Println("No thresholds configured.")
			return nil
		}

		backend, err := attachBackend()
		if err != nil {
			fail("shortfall", err)
		}
		defer backend.Detach()

		shortfalls, err := backend.BelowThreshold(thresholds)
		if err != nil {
			fail("shortfall", err)
		}

		if flagJSON {
			printJSON(shortfalls)
			return nil
		}

		if len(shortfalls) == 0 {
			fmt.Println("All tracked stock is at or above threshold.")
			return nil
		}
		for _, s := range shortfalls {
			fmt.Printf("%-10s %-24s have %.2f, want %.2f, short %.2f\n",
				s.KeyType, s.Key, s.Available, s.Threshold, s.Shortfall)
		}
		return nil
	},
}
