package menu

import (
	"regexp"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Marker strings used by the source site. A dish titled "Geschlossen"
// means the canteen is closed for that slot; a title containing "ferien"
// means a holiday period covering the whole day.
const (
	closedMarker   = "Geschlossen"
	vacationMarker = "ferien"
)

// Dish is a single offering, immutable once built.
type Dish struct {
	Typename      string
	ID            string
	Category      string
	Title         string
	Slug          string
	IsBalanced    bool
	IsVegan       bool
	IsVegetarian  bool
	ClimateRating string   // normalized to lower case
	Allergens     []string // raw allergen codes as delivered by the source
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// AllergenLabels derives human-readable labels from the raw allergen
// codes: empty codes are dropped, camelCase codes are split into
// title-cased words ("glutenFree" -> "Gluten Free").
func (d Dish) AllergenLabels() []string {
	// Casers are stateful, one per call
	labelCaser := cases.Title(language.English)

	labels := make([]string, 0, len(d.Allergens))
	for _, code := range d.Allergens {
		if code == "" {
			continue
		}
		spaced := camelBoundary.ReplaceAllString(code, "$1 $2")
		labels = append(labels, labelCaser.String(spaced))
	}
	return labels
}

// MenuItem is one (date, category) slot holding a resolved Dish.
// Slots whose dish could not be resolved are never kept.
type MenuItem struct {
	Typename string
	Date     time.Time
	Dish     *Dish
}

// Day is one calendar date's set of menu slots.
type Day struct {
	Typename string
	ID       string
	Date     time.Time
	Items    []MenuItem
}

// Menu is the full parsed weekly document. Days keep source order,
// which is not guaranteed to be sorted by date.
type Menu struct {
	Typename string
	ID       string
	Note     string
	Days     []Day
}
