package menuconfig

import "github.com/beacheats/beachsync/internal/models"

// Diff computes the sparse override set that turns the static defaults
// into the live catalog. Only availability and price are tracked per item;
// entries identical to their default are omitted entirely. Live items with
// no default counterpart are carried whole as custom additions.
func Diff(defaults, live models.Catalog) models.CatalogDiff {
	d := models.CatalogDiff{}
	custom := &models.CustomItems{}

	d.Proteins, custom.Proteins = diffSection(defaults.Proteins, live.Proteins)
	d.Formats, custom.Formats = diffSection(defaults.Formats, live.Formats)
	d.Addons, custom.Addons = diffSection(defaults.Addons, live.Addons)
	d.Exclusions, custom.Exclusions = diffSection(defaults.Exclusions, live.Exclusions)

	for category, liveItems := range live.MenuItems {
		deltas, extra := diffSection(defaults.MenuItems[category], liveItems)
		if len(deltas) > 0 {
			if d.MenuItems == nil {
				d.MenuItems = make(map[string]map[string]models.ItemDelta)
			}
			d.MenuItems[category] = deltas
		}
		if len(extra) > 0 {
			if custom.MenuItems == nil {
				custom.MenuItems = make(map[string][]models.Item)
			}
			custom.MenuItems[category] = extra
		}
	}

	for category, visible := range live.Visibility {
		def, known := defaults.Visibility[category]
		if !known {
			def = true // categories introduced by custom items default to visible
		}
		if visible != def {
			if d.Visibility == nil {
				d.Visibility = make(map[string]int)
			}
			d.Visibility[category] = boolToInt(visible)
		}
	}

	if len(custom.Proteins) > 0 || len(custom.Formats) > 0 || len(custom.Addons) > 0 ||
		len(custom.Exclusions) > 0 || len(custom.MenuItems) > 0 {
		d.Custom = custom
	}
	return d
}

// diffSection walks the default items by id and emits a minimal delta for
// each one the live section changed. Live items absent from the defaults
// come back as the second result, stored in full.
func diffSection(defaults, live []models.Item) (map[string]models.ItemDelta, []models.Item) {
	liveByID := make(map[string]models.Item, len(live))
	for _, item := range live {
		liveByID[item.ID] = item
	}

	var deltas map[string]models.ItemDelta
	known := make(map[string]bool, len(defaults))
	for _, def := range defaults {
		known[def.ID] = true
		item, ok := liveByID[def.ID]
		if !ok {
			continue // absent means "as default"
		}
		var delta models.ItemDelta
		if item.Available != def.Available {
			a := boolToInt(item.Available)
			delta.Available = &a
		}
		if item.Price != def.Price {
			p := item.Price
			delta.Price = &p
		}
		if delta.Available != nil || delta.Price != nil {
			if deltas == nil {
				deltas = make(map[string]models.ItemDelta)
			}
			deltas[def.ID] = delta
		}
	}

	var extra []models.Item
	for _, item := range live {
		if !known[item.ID] {
			extra = append(extra, item)
		}
	}
	return deltas, extra
}

// Merge reconstructs the effective catalog: a complete default snapshot,
// price/availability deltas applied by id, custom additions appended
// verbatim, then visibility flags. Unknown ids in the diff are ignored so
// stale shared links referencing removed items still decode. Applying the
// same diff twice is a no-op.
func Merge(defaults models.Catalog, d models.CatalogDiff) models.Catalog {
	out := defaults

	out.Proteins = mergeSection(defaults.Proteins, d.Proteins, customOrNil(d.Custom).Proteins)
	out.Formats = mergeSection(defaults.Formats, d.Formats, customOrNil(d.Custom).Formats)
	out.Addons = mergeSection(defaults.Addons, d.Addons, customOrNil(d.Custom).Addons)
	out.Exclusions = mergeSection(defaults.Exclusions, d.Exclusions, customOrNil(d.Custom).Exclusions)

	out.MenuItems = make(map[string][]models.Item, len(defaults.MenuItems))
	for category, items := range defaults.MenuItems {
		out.MenuItems[category] = mergeSection(items, d.MenuItems[category], nil)
	}
	out.Visibility = make(map[string]bool, len(defaults.Visibility))
	for category, visible := range defaults.Visibility {
		out.Visibility[category] = visible
	}

	if d.Custom != nil {
		for category, extra := range d.Custom.MenuItems {
			out.MenuItems[category] = append(out.MenuItems[category], extra...)
			if _, ok := out.Visibility[category]; !ok {
				out.Visibility[category] = true
			}
		}
	}

	for category, v := range d.Visibility {
		if _, ok := out.Visibility[category]; ok {
			out.Visibility[category] = v == 1
		}
	}
	return out
}

func mergeSection(defaults []models.Item, deltas map[string]models.ItemDelta, extra []models.Item) []models.Item {
	out := make([]models.Item, 0, len(defaults)+len(extra))
	for _, def := range defaults {
		item := def
		if delta, ok := deltas[def.ID]; ok {
			if delta.Available != nil {
				item.Available = *delta.Available == 1
			}
			if delta.Price != nil {
				item.Price = *delta.Price
			}
		}
		out = append(out, item)
	}
	out = append(out, extra...)
	return out
}

func customOrNil(c *models.CustomItems) models.CustomItems {
	if c == nil {
		return models.CustomItems{}
	}
	return *c
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
