package models

import "time"

type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDone      OrderStatus = "done"
)

// NextStatus returns the single legal forward transition for a status.
// StatusDone is terminal and maps to itself, and so does anything outside
// the known set; an unrecognized stored status can never be advanced.
func NextStatus(s OrderStatus) OrderStatus {
	switch s {
	case StatusNew:
		return StatusPreparing
	case StatusPreparing:
		return StatusReady
	case StatusReady:
		return StatusDone
	default:
		return s
	}
}

// LineItem is either a build-your-own composition (protein + format +
// addons) or a reference to a ready-made menu item by category. The sync
// layer only cares that it serializes; pricing is resolved at display time.
type LineItem struct {
	ID         string   `json:"id" mapstructure:"id"`
	Type       string   `json:"type,omitempty" mapstructure:"type"` // "build-your-own" | "menu-item"
	Category   string   `json:"category,omitempty" mapstructure:"category"`
	Protein    string   `json:"protein,omitempty" mapstructure:"protein"`
	Format     string   `json:"format,omitempty" mapstructure:"format"`
	Addons     []string `json:"addons,omitempty" mapstructure:"addons"`
	Exclusions []string `json:"exclusions,omitempty" mapstructure:"exclusions"`
}

type GuestInfo struct {
	RoomNumber string `json:"roomNumber" mapstructure:"roomNumber"`
	LastName   string `json:"lastName" mapstructure:"lastName"`
	Allergies  string `json:"allergies,omitempty" mapstructure:"allergies"`
}

type Order struct {
	OrderNumber string      `json:"orderNumber" mapstructure:"orderNumber"`
	Items       []LineItem  `json:"items" mapstructure:"items"`
	GuestInfo   GuestInfo   `json:"guestInfo" mapstructure:"guestInfo"`
	Status      OrderStatus `json:"status" mapstructure:"status"`
	PlacedAt    time.Time   `json:"placedAt" mapstructure:"placedAt"`
}
