// Show command prints one item and its split lineage.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an item and its children",
	Long: `Show prints one item in full, followed by any children created
by splitting it during partial consumption.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			fail("show", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail("show", err)
		}
		defer backend.Detach()

		item, err := backend.Get(id)
		if err != nil {
			fail("show", err)
		}
		children, err := backend.Children(id)
		if err != nil {
			fail("show", err)
		}

		if flagJSON {
			printJSON(struct {
				Item     *types.Item   `json:"item"`
				Children []*types.Item `json:"children,omitempty"`
			}{item, children})
			return nil
		}

		printItem(item)
		if len(children) > 0 {
			fmt.Println("Children:")
			for _, child := range children {
				printItem(child)
			}
		}
		return nil
	},
}
