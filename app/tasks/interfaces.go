package tasks

import (
	"context"

	"github.com/stair-ch/foodstoffi/app/menu"
	"github.com/stair-ch/foodstoffi/app/notify"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing, and by
// the API to trigger an announcement run on demand.
// Example usage:
//
//	scheduler := NewScheduler(configCache, deliveryRepo, pipeline, notifier)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewSendMenuTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// MenuPipelineInterface is one fetch-extract-filter run.
type MenuPipelineInterface interface {
	Run(ctx context.Context) ([]menu.Dish, error)
}

// NotifierInterface delivers today's dishes to a single target.
type NotifierInterface interface {
	Send(ctx context.Context, target *notify.Target, dishes []menu.Dish) error
}

// TargetSourceInterface provides the notification targets to announce to.
type TargetSourceInterface interface {
	GetEnabledTargets() map[string]*notify.Target
}
