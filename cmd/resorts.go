package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beacheats/beachsync/internal/catalog"
)

var resortsCmd = &cobra.Command{
	Use:   "resorts",
	Short: "List the registered resorts",
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range catalog.IDs() {
			r := catalog.Get(id)
			def := ""
			if id == catalog.DefaultResortID {
				def = " (default)"
			}
			fmt.Printf("%-10s %-30s prefix %s%s\n", r.ID, r.Name, r.OrderPrefix, def)
		}
	},
}

func init() {
	rootCmd.AddCommand(resortsCmd)
}
