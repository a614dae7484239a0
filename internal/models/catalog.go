package models

// LocalizedText holds the guest-facing copy in both supported languages.
type LocalizedText struct {
	EN string `json:"en,omitempty"`
	ES string `json:"es,omitempty"`
}

// Item is one configurable entry of a menu section: a protein, a format,
// an add-on, an exclusion, or a ready-made dish inside a category.
type Item struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
	Icon        string        `json:"icon,omitempty"`
	Dietary     []string      `json:"dietary,omitempty"`
	Price       float64       `json:"price"`
	Available   bool          `json:"available"`
}

// Catalog is the fully resolved menu for one resort: static defaults with
// any admin overrides already applied. Consumers never see a partial merge.
type Catalog struct {
	Proteins   []Item            `json:"proteins"`
	Formats    []Item            `json:"formats"`
	Addons     []Item            `json:"addons"`
	Exclusions []Item            `json:"exclusions"`
	MenuItems  map[string][]Item `json:"menuItems"`
	// Visibility flags one per menu category; a missing key means visible.
	Visibility map[string]bool `json:"visibility,omitempty"`
}

// ItemDelta records only the fields of an item that differ from the
// resort's static default. Availability travels as 0/1 to keep the
// serialized form short enough for a query parameter.
type ItemDelta struct {
	Available *int     `json:"a,omitempty"`
	Price     *float64 `json:"p,omitempty"`
}

// CustomItems carries entries that have no default to diff against; they
// are stored whole so a decode can reconstruct them on another device.
type CustomItems struct {
	Proteins   []Item            `json:"proteins,omitempty"`
	Formats    []Item            `json:"formats,omitempty"`
	Addons     []Item            `json:"addons,omitempty"`
	Exclusions []Item            `json:"exclusions,omitempty"`
	MenuItems  map[string][]Item `json:"_m,omitempty"`
}

// CatalogDiff is the sparse, link-sized form of a catalog. Flat sections
// sit at the top level; menu-item categories nest under "_m", visibility
// flags under "_v" and custom additions under "_c" so nothing collides.
type CatalogDiff struct {
	Proteins   map[string]ItemDelta            `json:"proteins,omitempty"`
	Formats    map[string]ItemDelta            `json:"formats,omitempty"`
	Addons     map[string]ItemDelta            `json:"addons,omitempty"`
	Exclusions map[string]ItemDelta            `json:"exclusions,omitempty"`
	MenuItems  map[string]map[string]ItemDelta `json:"_m,omitempty"`
	Visibility map[string]int                  `json:"_v,omitempty"`
	Custom     *CustomItems                    `json:"_c,omitempty"`
}

// Empty reports whether the diff carries no overrides at all.
func (d CatalogDiff) Empty() bool {
	return len(d.Proteins) == 0 && len(d.Formats) == 0 && len(d.Addons) == 0 &&
		len(d.Exclusions) == 0 && len(d.MenuItems) == 0 && len(d.Visibility) == 0 &&
		(d.Custom == nil || len(d.Custom.Proteins) == 0 && len(d.Custom.Formats) == 0 &&
			len(d.Custom.Addons) == 0 && len(d.Custom.Exclusions) == 0 && len(d.Custom.MenuItems) == 0)
}
