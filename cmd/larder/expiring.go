// Expiring command lists items close to, or past, their expire date.
package main

import (
	"github.com/spf13/cobra"
)

var expiringDays int

var expiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List items expiring soon",
	Long: `Expiring lists in_stock items whose expire date falls within the
window, earliest first. Items already past their date are included.

Example:
  larder expiring --days 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("expiring", err)
		}
		defer backend.Detach()

		items, err := backend.Expiring(expiringDays)
		if err != nil {
			fail("expiring", err)
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
	expiringCmd.Flags().IntVar(&expiringDays, "days", 3, "window in days from today")
}
