package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beacheats/beachsync/internal/demo"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Demo and walkthrough helpers",
}

var demoSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the kitchen display with sample orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		count, _ := cmd.Flags().GetInt("count")
		placed := demo.NewSeeder(a.orders).Seed(cmd.Context(), count)
		fmt.Printf("seeded %d demo orders for %s\n", len(placed), a.resort.ID)
		return nil
	},
}

func init() {
	demoSeedCmd.Flags().Int("count", 8, "number of demo orders to place")
	demoCmd.AddCommand(demoSeedCmd)
	rootCmd.AddCommand(demoCmd)
}
