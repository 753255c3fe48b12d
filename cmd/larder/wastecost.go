// Wastecost command prices the food thrown away in a date range.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var (
	wastecostFrom   string
	wastecostTo     string
	wastecostPrices string
)

var wastecostCmd = &cobra.Command{
	Use:   "wastecost",
	Short: "Report the cost of wasted items in a date range",
	Long: `Wastecost sums quantity times unit price over items marked waste
within [from, to). Prices come from a JSON file mapping item name to
unit price; items without a price count as zero and are reported as
unpriced. The default range is the last 30 days.

Example:
  larder wastecost --prices prices.json --from 2026-08-01 --to 2026-09-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := wastecostRange()
		if err != nil {
			fail("wastecost", err)
		}

		prices := types.PriceList{}
		if wastecostPrices != "" {
			prices, err = loadPriceList(wastecostPrices)
			if err != nil {
				fail("wastecost", err)
			}
		}

		backend, err := attachBackend()
		if err != nil {
			fail("wastecost", err)
		}
		defer backend.Detach()

		report, err := backend.WasteCost(from, to, prices)
		if err != nil {
			fail("wastecost", err)
		}

		if flagJSON {
			printJSON(report)
			return nil
		}
		fmt.Printf("Waste from %s to %s: %.2f across %d items",
			report.From.Format("2006-01-02"), report.To.Format("2006-01-02"), report.Total, report.Items)
		if report.Unpriced > 0 {
			fmt.Printf(" (%d unpriced)", report.Unpriced)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	wastecostCmd.Flags().StringVar(&wastecostFrom, "from", "", "range start, YYYY-MM-DD (default: 30 days ago)")
	wastecostCmd.Flags().StringVar(&wastecostTo, "to", "", "range end, exclusive, YYYY-MM-DD (default: tomorrow)")
	wastecostCmd.Flags().StringVar(&wastecostPrices, "prices", "", "JSON file mapping item name to unit price")
}

// wastecostRange resolves the --from/--to flags, defaulting to the last
// 30 days up to and including today.
func wastecostRange() (time.Time, time.Time, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	var err error
	if wastecostFrom != "" {
		from, err = parseDate(wastecostFrom)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if wastecostTo != "" {
		to, err = parseDate(wastecostTo)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

// loadPriceList reads a JSON object of item name to unit price.
func loadPriceList(path string) (types.PriceList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price list: %w", err)
	}
	var prices types.PriceList
	if err := json.Unmarshal(data, &prices); err != nil {
		return nil, fmt.Errorf("%w: parse price list %s: %v", types.ErrValidation, path, err)
	}
	return prices, nil
}
