package api

import (
	"github.com/stair-ch/foodstoffi/app/database"
	"github.com/stair-ch/foodstoffi/app/notify"
	"github.com/stair-ch/foodstoffi/app/tasks"
)

type Handler struct {
	pipeline     tasks.MenuPipelineInterface
	notifier     tasks.NotifierInterface
	targetCache  *notify.ConfigCache
	deliveryRepo database.DeliveryRepository
	scheduler    tasks.TaskSchedulerInterface
}

// DishResponse is the JSON view of a dish served by /menu/today.
type DishResponse struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Slug          string   `json:"slug"`
	IsVegan       bool     `json:"is_vegan"`
	IsVegetarian  bool     `json:"is_vegetarian"`
	IsBalanced    bool     `json:"is_balanced"`
	ClimateRating string   `json:"climate_rating"`
	Allergens     []string `json:"allergens"`
}
