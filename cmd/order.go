package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beacheats/beachsync/internal/models"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place, watch and advance kitchen orders",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place a guest order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		specs, _ := cmd.Flags().GetStringArray("item")
		items, err := parseItems(specs)
		if err != nil {
			return err
		}
		room, _ := cmd.Flags().GetString("room")
		name, _ := cmd.Flags().GetString("name")
		allergies, _ := cmd.Flags().GetString("allergies")

		placed := a.orders.Place(cmd.Context(), models.Order{
			Items:     items,
			GuestInfo: models.GuestInfo{RoomNumber: room, LastName: name, Allergies: allergies},
		})
		fmt.Printf("order %s placed (%d items, status %s)\n", placed.OrderNumber, len(placed.Items), placed.Status)
		return nil
	},
}

var orderWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the kitchen ticket display",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mode := "local-only"
		if a.orders.RemoteAvailable() {
			mode = "live"
		}
		fmt.Printf("watching orders for %s (%s), ctrl-c to stop\n", a.resort.Name, mode)

		unsubscribe := a.orders.Subscribe(ctx, func(list []models.Order) {
			fmt.Printf("--- %d open order(s)\n", len(list))
			for _, o := range list {
				fmt.Printf("%-12s %-9s room %-5s %s (%d items)\n",
					o.OrderNumber, o.Status, o.GuestInfo.RoomNumber, o.GuestInfo.LastName, len(o.Items))
			}
		})
		defer unsubscribe()

		<-ctx.Done()
		return nil
	},
}

var orderAdvanceCmd = &cobra.Command{
	Use:   "advance <order-number>",
	Short: "Advance an order to its next status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		number := args[0]
		for _, o := range a.orders.Snapshot() {
			if o.OrderNumber != number {
				continue
			}
			next := models.NextStatus(o.Status)
			a.orders.UpdateStatus(cmd.Context(), number, next)
			fmt.Printf("order %s: %s -> %s\n", number, o.Status, next)
			return nil
		}
		return fmt.Errorf("order %s not found", number)
	},
}

var orderClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Irreversibly remove every order for the resort",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear without --yes")
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		a.orders.ClearAll(cmd.Context())
		fmt.Printf("orders cleared for %s\n", a.resort.ID)
		return nil
	},
}

// parseItems reads repeated --item flags. "build:chicken/tacos+guacamole"
// is a build-your-own item; "menu:picaditos/birria-tacos" references a
// ready-made dish.
func parseItems(specs []string) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(specs))
	for i, spec := range specs {
		kind, rest, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("item %q: want build:<protein>/<format>[+addon...] or menu:<category>/<id>", spec)
		}
		switch kind {
		case "build":
			body, addons, _ := strings.Cut(rest, "+")
			protein, format, ok := strings.Cut(body, "/")
			if !ok {
				return nil, fmt.Errorf("item %q: want build:<protein>/<format>", spec)
			}
			item := models.LineItem{
				ID:      fmt.Sprintf("byo-%d", i+1),
				Type:    "build-your-own",
				Protein: protein,
				Format:  format,
			}
			if addons != "" {
				item.Addons = strings.Split(addons, "+")
			}
			items = append(items, item)
		case "menu":
			category, id, ok := strings.Cut(rest, "/")
			if !ok {
				return nil, fmt.Errorf("item %q: want menu:<category>/<id>", spec)
			}
			items = append(items, models.LineItem{ID: id, Type: "menu-item", Category: category})
		default:
			return nil, fmt.Errorf("item %q: unknown kind %q", spec, kind)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one --item is required")
	}
	return items, nil
}

func init() {
	orderPlaceCmd.Flags().StringArray("item", nil, "line item, repeatable (build:<protein>/<format>[+addon...] | menu:<category>/<id>)")
	orderPlaceCmd.Flags().String("room", "", "delivery room number")
	orderPlaceCmd.Flags().String("name", "", "guest last name")
	orderPlaceCmd.Flags().String("allergies", "", "free-text allergy notes")
	orderPlaceCmd.MarkFlagRequired("room")
	orderPlaceCmd.MarkFlagRequired("name")

	orderClearCmd.Flags().Bool("yes", false, "confirm the irreversible clear")

	orderCmd.AddCommand(orderPlaceCmd, orderWatchCmd, orderAdvanceCmd, orderClearCmd)
	rootCmd.AddCommand(orderCmd)
}
