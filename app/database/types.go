package database

import (
	"time"
)

// Delivery records one announcement sent to one target for one menu
// date. Menus themselves are never stored.
type Delivery struct {
	ID        int64
	Target    string
	MenuDate  string // calendar date, YYYY-MM-DD
	DishCount int
	SentAt    time.Time
}
