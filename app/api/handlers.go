package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stair-ch/foodstoffi/app/cfg"
	"github.com/stair-ch/foodstoffi/app/database"
	"github.com/stair-ch/foodstoffi/app/menu"
	"github.com/stair-ch/foodstoffi/app/notify"
	"github.com/stair-ch/foodstoffi/app/tasks"
)

func NewHandler(pipeline tasks.MenuPipelineInterface, notifier tasks.NotifierInterface,
	targetCache *notify.ConfigCache, deliveryRepo database.DeliveryRepository,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		pipeline:     pipeline,
		notifier:     notifier,
		targetCache:  targetCache,
		deliveryRepo: deliveryRepo,
		scheduler:    scheduler,
	}
}

// GetTodayMenu runs the pipeline on demand. The scheduled announcement
// path does not go through here; this endpoint exists for checking what
// would be sent.
func (h *Handler) GetTodayMenu(c *gin.Context) {
	dishes, err := h.pipeline.Run(c.Request.Context())
	if err != nil {
		slog.Error("Pipeline run failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch menu source"})
		return
	}

	if len(dishes) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]DishResponse, 0, len(dishes))
	for _, dish := range dishes {
		response = append(response, dishResponse(dish))
	}

	c.JSON(http.StatusOK, gin.H{"dishes": response})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": cfg.GetVersion(),
		"targets": h.targetCache.GetTargetCount(),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	deliveryCount, err := h.deliveryRepo.GetDeliveryCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_delivery_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	recent, err := h.deliveryRepo.GetRecentDeliveries(10)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_deliveries", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	recentResponse := make([]gin.H, 0, len(recent))
	for _, d := range recent {
		recentResponse = append(recentResponse, gin.H{
			"target":     d.Target,
			"menu_date":  d.MenuDate,
			"dish_count": d.DishCount,
			"sent_at":    d.SentAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"targets":         h.targetCache.GetTargetCount(),
		"enabled_targets": len(h.targetCache.GetEnabledTargets()),
		"deliveries":      deliveryCount,
		"recent":          recentResponse,
	})
}

// TriggerNotify enqueues an announcement run outside the daily schedule.
func (h *Handler) TriggerNotify(c *gin.Context) {
	task := tasks.NewSendMenuTask(h.pipeline, h.notifier, h.targetCache, h.deliveryRepo)

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Failed to enqueue SendMenuTask", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "enqueued", "task_id": task.GetID()})
}

func dishResponse(dish menu.Dish) DishResponse {
	return DishResponse{
		Title:         dish.Title,
		Category:      dish.Category,
		Slug:          dish.Slug,
		IsVegan:       dish.IsVegan,
		IsVegetarian:  dish.IsVegetarian,
		IsBalanced:    dish.IsBalanced,
		ClimateRating: dish.ClimateRating,
		Allergens:     dish.AllergenLabels(),
	}
}
