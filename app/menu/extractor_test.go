package menu

import (
	"testing"
)

const menuJSON = `{
	"__typename": "MenuCategory",
	"id": "menu-1",
	"note": "",
	"calendar": {"week": {"daily": [
		{
			"__typename": "MenuDay",
			"id": "day-1",
			"from": {"dateLocal": "2026-08-31"},
			"menuItems": [
				{
					"__typename": "MenuItem",
					"category": {"name": "Tradition"},
					"dish": {
						"__typename": "Recipe",
						"id": "dish-1",
						"name": "Riz Casimir",
						"slug": "riz-casimir",
						"isVegan": false,
						"isVegetarian": false,
						"stats": {
							"food2050HealthRating": {"isBalanced": false},
							"food2050climateImpact": {"rating": "B"}
						},
						"allergens": []
					}
				}
			]
		}
	]}}
}`

func pageWithPayload(menu string) []byte {
	return []byte(`<!DOCTYPE html><html><head><title>Weekly Menu</title></head><body>
<div id="__next">rendered content</div>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"organisation":{"outlet":{"menuCategory":` + menu + `}}}}}</script>
</body></html>`)
}

func TestExtractor(t *testing.T) {
	extractor := NewExtractor()

	m, err := extractor.Run(pageWithPayload(menuJSON))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if m == nil {
		t.Fatal("Expected a menu")
	}

	if m.ID != "menu-1" {
		t.Errorf("Expected menu id 'menu-1', got: %s", m.ID)
	}
	if len(m.Days) != 1 {
		t.Fatalf("Expected 1 day, got: %d", len(m.Days))
	}
	if len(m.Days[0].Items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(m.Days[0].Items))
	}
	if m.Days[0].Items[0].Dish.ClimateRating != "b" {
		t.Errorf("Expected climate rating 'b', got: %s", m.Days[0].Items[0].Dish.ClimateRating)
	}
}

func TestExtractor_PayloadMissing(t *testing.T) {
	extractor := NewExtractor()

	page := []byte(`<html><body><script id="other">{}</script></body></html>`)

	m, err := extractor.Run(page)
	if err != nil {
		t.Fatalf("Expected soft outcome for missing payload, got error: %v", err)
	}
	if m != nil {
		t.Error("Expected no menu when the payload script is absent")
	}
}

func TestExtractor_PayloadNotJSON(t *testing.T) {
	extractor := NewExtractor()

	page := []byte(`<html><body><script id="__NEXT_DATA__">not json at all</script></body></html>`)

	m, err := extractor.Run(page)
	if err != nil {
		t.Fatalf("Expected soft outcome for unparsable payload, got error: %v", err)
	}
	if m != nil {
		t.Error("Expected no menu for unparsable payload")
	}
}

func TestExtractor_FragmentPathMissing(t *testing.T) {
	extractor := NewExtractor()

	page := []byte(`<html><body><script id="__NEXT_DATA__">{"props":{"pageProps":{}}}</script></body></html>`)

	m, err := extractor.Run(page)
	if err != nil {
		t.Fatalf("Expected soft outcome for missing fragment, got error: %v", err)
	}
	if m != nil {
		t.Error("Expected no menu when the fragment path is missing")
	}
}

func TestExtractor_MalformedMenu(t *testing.T) {
	extractor := NewExtractor()

	// Fragment present but missing required top-level fields
	m, err := extractor.Run(pageWithPayload(`{"__typename": "MenuCategory"}`))
	if err == nil {
		t.Error("Expected error for menu missing required fields")
	}
	if m != nil {
		t.Error("Expected no partially-built menu")
	}
}

func TestExtractor_EmptyInput(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.Run(nil)
	if err == nil {
		t.Error("Expected error for empty input")
	}
}
