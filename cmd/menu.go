package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/beacheats/beachsync/internal/models"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Inspect and edit the resort menu overrides",
}

var menuShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective menu (defaults with overrides applied)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cat := a.menu.Current()
		printSection("proteins", cat.Proteins)
		printSection("formats", cat.Formats)
		printSection("addons", cat.Addons)
		printSection("exclusions", cat.Exclusions)

		categories := make([]string, 0, len(cat.MenuItems))
		for c := range cat.MenuItems {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			label := c
			if !cat.Visibility[c] {
				label += " (hidden)"
			}
			printSection(label, cat.MenuItems[c])
		}
		return nil
	},
}

var menuSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Override availability or price for one item",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		section, _ := cmd.Flags().GetString("section")
		id, _ := cmd.Flags().GetString("id")

		cat := a.menu.Current()
		items, ok := sectionItems(&cat, section)
		if !ok {
			return fmt.Errorf("unknown section %q", section)
		}
		idx := -1
		for i, item := range items {
			if item.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("no item %q in section %q", id, section)
		}

		if cmd.Flags().Changed("price") {
			price, _ := cmd.Flags().GetFloat64("price")
			items[idx].Price = price
		}
		if cmd.Flags().Changed("available") {
			available, _ := cmd.Flags().GetBool("available")
			items[idx].Available = available
		}

		a.menu.Save(cmd.Context(), cat)
		fmt.Printf("%s/%s: price=%.2f available=%v\n", section, id, items[idx].Price, items[idx].Available)
		return nil
	},
}

var menuHideCmd = &cobra.Command{
	Use:   "hide <category>",
	Short: "Toggle a menu category's visibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cat := a.menu.Current()
		category := args[0]
		visible, ok := cat.Visibility[category]
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		cat.Visibility[category] = !visible
		a.menu.Save(cmd.Context(), cat)
		fmt.Printf("%s visible=%v\n", category, !visible)
		return nil
	},
}

var menuLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print the shareable link payload for the current overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		payload := a.menu.EncodeShareable(a.menu.Current())
		fmt.Printf("?resort=%s&config=%s\n", a.resort.ID, payload)
		return nil
	},
}

var menuApplyCmd = &cobra.Command{
	Use:   "apply <payload>",
	Short: "Apply a shareable link payload to this device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		cat := a.menu.DecodeShareable(args[0])
		a.menu.Save(cmd.Context(), cat)
		fmt.Printf("menu overrides applied for %s\n", a.resort.ID)
		return nil
	},
}

func sectionItems(cat *models.Catalog, section string) ([]models.Item, bool) {
	switch section {
	case "proteins":
		return cat.Proteins, true
	case "formats":
		return cat.Formats, true
	case "addons":
		return cat.Addons, true
	case "exclusions":
		return cat.Exclusions, true
	default:
		items, ok := cat.MenuItems[section]
		return items, ok
	}
}

func printSection(label string, items []models.Item) {
	fmt.Printf("%s:\n", label)
	for _, item := range items {
		marker := " "
		if !item.Available {
			marker = "x"
		}
		price := ""
		if item.Price != 0 {
			price = fmt.Sprintf("  +$%.2f", item.Price)
		}
		fmt.Printf("  [%s] %-20s %s%s\n", marker, item.ID, item.Name.EN, price)
	}
}

func init() {
	menuSetCmd.Flags().String("section", "", "section: proteins | formats | addons | exclusions | <category>")
	menuSetCmd.Flags().String("id", "", "item id")
	menuSetCmd.Flags().Float64("price", 0, "override price")
	menuSetCmd.Flags().Bool("available", true, "override availability")
	menuSetCmd.MarkFlagRequired("section")
	menuSetCmd.MarkFlagRequired("id")

	menuCmd.AddCommand(menuShowCmd, menuSetCmd, menuHideCmd, menuLinkCmd, menuApplyCmd)
	rootCmd.AddCommand(menuCmd)
}
