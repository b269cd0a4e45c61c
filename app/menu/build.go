package menu

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stair-ch/foodstoffi/app/tree"
)

// BuildMenu constructs a Menu from the raw payload fragment. Required
// top-level fields abort the whole build; a malformed Day only drops
// that Day.
func BuildMenu(frag map[string]any) (*Menu, error) {
	typename, err := tree.String(frag, "__typename")
	if err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}
	id, err := tree.String(frag, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}
	note, err := tree.String(frag, "note")
	if err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}

	daily, err := tree.List(frag, "calendar.week.daily")
	if err != nil {
		return nil, fmt.Errorf("failed to build menu: %w", err)
	}

	days := make([]Day, 0, len(daily))
	for _, entry := range daily {
		dayFrag, ok := entry.(map[string]any)
		if !ok {
			slog.Debug("Dropping malformed day entry", "menu", id, "type", fmt.Sprintf("%T", entry))
			continue
		}
		day, err := buildDay(dayFrag)
		if err != nil {
			slog.Debug("Dropping malformed day", "menu", id, "error", err)
			continue
		}
		days = append(days, *day)
	}

	return &Menu{
		Typename: typename,
		ID:       id,
		Note:     note,
		Days:     days,
	}, nil
}

// buildDay constructs one Day. Malformed menu items are dropped without
// affecting their siblings; source order is preserved for the rest.
func buildDay(frag map[string]any) (*Day, error) {
	typename, err := tree.String(frag, "__typename")
	if err != nil {
		return nil, err
	}
	id, err := tree.String(frag, "id")
	if err != nil {
		return nil, err
	}

	dateLocal, err := tree.String(frag, "from.dateLocal")
	if err != nil {
		return nil, err
	}
	date, err := parseLocalDate(dateLocal)
	if err != nil {
		return nil, err
	}

	rawItems, err := tree.List(frag, "menuItems")
	if err != nil {
		return nil, err
	}

	items := make([]MenuItem, 0, len(rawItems))
	for _, entry := range rawItems {
		itemFrag, ok := entry.(map[string]any)
		if !ok {
			slog.Debug("Dropping malformed menu item entry", "day", id, "type", fmt.Sprintf("%T", entry))
			continue
		}
		item, err := buildMenuItem(itemFrag, date)
		if err != nil {
			slog.Debug("Dropping malformed menu item", "day", id, "error", err)
			continue
		}
		if item == nil {
			continue
		}
		items = append(items, *item)
	}

	return &Day{
		Typename: typename,
		ID:       id,
		Date:     date,
		Items:    items,
	}, nil
}

// buildMenuItem constructs one slot. A slot whose dish resolves to
// "no dish" (closed, or no dish fragment at all) yields (nil, nil).
func buildMenuItem(frag map[string]any, date time.Time) (*MenuItem, error) {
	typename, err := tree.String(frag, "__typename")
	if err != nil {
		return nil, err
	}
	category, err := tree.String(frag, "category.name")
	if err != nil {
		return nil, err
	}

	dishFrag, err := tree.Map(frag, "dish")
	if err != nil {
		return nil, nil
	}

	dish, err := buildDish(dishFrag, category)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, nil
	}

	return &MenuItem{
		Typename: typename,
		Date:     date,
		Dish:     dish,
	}, nil
}

// buildDish constructs a Dish from its fragment plus the category name
// inherited from the containing slot. A title containing the closed
// marker yields (nil, nil); any missing required field is an error the
// caller turns into a dropped slot.
func buildDish(frag map[string]any, category string) (*Dish, error) {
	if len(frag) == 0 {
		return nil, nil
	}

	title, err := tree.String(frag, "name")
	if err != nil {
		return nil, err
	}
	if strings.Contains(title, closedMarker) {
		return nil, nil
	}

	typename, err := tree.String(frag, "__typename")
	if err != nil {
		return nil, err
	}
	id, err := tree.String(frag, "id")
	if err != nil {
		return nil, err
	}
	slug, err := tree.String(frag, "slug")
	if err != nil {
		return nil, err
	}
	isVegan, err := tree.Bool(frag, "isVegan")
	if err != nil {
		return nil, err
	}
	isVegetarian, err := tree.Bool(frag, "isVegetarian")
	if err != nil {
		return nil, err
	}
	isBalanced, err := tree.Bool(frag, "stats.food2050HealthRating.isBalanced")
	if err != nil {
		return nil, err
	}
	rating, err := tree.String(frag, "stats.food2050climateImpact.rating")
	if err != nil {
		return nil, err
	}

	rawAllergens, err := tree.List(frag, "allergens")
	if err != nil {
		return nil, err
	}
	allergens := make([]string, 0, len(rawAllergens))
	for _, entry := range rawAllergens {
		code, err := tree.String(entry, "allergen.externalId")
		if err != nil {
			return nil, err
		}
		allergens = append(allergens, code)
	}

	return &Dish{
		Typename:      typename,
		ID:            id,
		Category:      category,
		Title:         title,
		Slug:          slug,
		IsBalanced:    isBalanced,
		IsVegan:       isVegan,
		IsVegetarian:  isVegetarian,
		ClimateRating: strings.ToLower(rating),
		Allergens:     allergens,
	}, nil
}

// parseLocalDate parses an ISO date or datetime string, discarding any
// time-of-day component.
func parseLocalDate(value string) (time.Time, error) {
	if len(value) < 10 {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	date, err := time.Parse("2006-01-02", value[:10])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return date, nil
}
