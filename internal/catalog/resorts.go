package catalog

import "github.com/beacheats/beachsync/internal/models"

// Resort identifies one property in the registry. Orders and menu
// configuration for different resorts never mix.
type Resort struct {
	ID          string
	Name        string
	OrderPrefix string // short prefix for order numbers, e.g. SC123456A7B
}

var resorts = map[string]Resort{
	"susurros": {ID: "susurros", Name: "Susurros del Corazón", OrderPrefix: "SC"},
	"rwkona":   {ID: "rwkona", Name: "Residences Waikoloa Kona", OrderPrefix: "RK"},
}

const DefaultResortID = "susurros"

func IsValid(resortID string) bool {
	_, ok := resorts[resortID]
	return ok
}

// Get returns the resort record, falling back to the default resort for
// unknown ids the same way the guest app does.
func Get(resortID string) Resort {
	if r, ok := resorts[resortID]; ok {
		return r
	}
	return resorts[DefaultResortID]
}

func IDs() []string {
	return []string{"susurros", "rwkona"}
}

// Defaults returns a fresh copy of the static default catalog for a
// resort. Callers may mutate the result freely; the package-level tables
// are never aliased. Both registered resorts currently share one menu,
// matching the product's template setup.
func Defaults(resortID string) models.Catalog {
	return models.Catalog{
		Proteins:   defaultProteins(),
		Formats:    defaultFormats(),
		Addons:     defaultAddons(),
		Exclusions: defaultExclusions(),
		MenuItems:  defaultMenuItems(),
		Visibility: defaultVisibility(),
	}
}
