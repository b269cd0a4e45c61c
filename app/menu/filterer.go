package menu

import (
	"log/slog"
	"strings"
	"time"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run selects the dishes for now's calendar date. Days are scanned in
// source order; the first matching Day wins. The result is suppressed
// entirely when the day has no dishes or when any dish title carries
// the vacation marker.
func (f *Filterer) Run(m *Menu, now time.Time) []Dish {
	for _, day := range m.Days {
		if !sameDate(day.Date, now) {
			continue
		}

		dishes := make([]Dish, 0, len(day.Items))
		for _, item := range day.Items {
			if item.Dish != nil {
				dishes = append(dishes, *item.Dish)
			}
		}

		if len(dishes) == 0 {
			slog.Warn("No dishes for today", "date", day.Date.Format("2006-01-02"))
			return nil
		}

		for _, dish := range dishes {
			if strings.Contains(strings.ToLower(dish.Title), vacationMarker) {
				slog.Warn("Menu suppressed for holiday period", "title", dish.Title)
				return nil
			}
		}

		return dishes
	}

	slog.Warn("No day matches today", "date", now.Format("2006-01-02"), "days", len(m.Days))
	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
