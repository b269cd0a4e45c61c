package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stair-ch/foodstoffi/app/database"
)

// SendMenuTask is one announcement run: fetch and extract the menu,
// filter it to today, deliver to every enabled target that has not been
// notified for today's date yet. Transport failures are not retried.
type SendMenuTask struct {
	Task
	pipeline     MenuPipelineInterface
	notifier     NotifierInterface
	targets      TargetSourceInterface
	deliveryRepo database.DeliveryRepository
}

func NewSendMenuTask(pipeline MenuPipelineInterface, notifier NotifierInterface,
	targets TargetSourceInterface, deliveryRepo database.DeliveryRepository) *SendMenuTask {
	return &SendMenuTask{
		Task:         NewTask(TaskTypeSendMenu, "daily-menu", 0),
		pipeline:     pipeline,
		notifier:     notifier,
		targets:      targets,
		deliveryRepo: deliveryRepo,
	}
}

func (t *SendMenuTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	dishes, err := t.pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to run menu pipeline: %w", err)
	}

	if len(dishes) == 0 {
		slog.Warn("No menu available today, nothing to send")
		return nil
	}

	today := time.Now()
	targets := t.targets.GetEnabledTargets()
	if len(targets) == 0 {
		slog.Warn("No enabled notification targets configured")
		return nil
	}

	deliveredCount := 0
	skippedCount := 0
	failedCount := 0

	for _, target := range targets {
		delivered, err := t.deliveryRepo.WasDelivered(target.Name, today)
		if err != nil {
			slog.Error("Failed to check delivery state", "target", target.Name, "error", err)
			failedCount++
			continue
		}
		if delivered {
			slog.Debug("Target already notified today, skipping", "target", target.Name)
			skippedCount++
			continue
		}

		if err := t.notifier.Send(ctx, target, dishes); err != nil {
			slog.Error("Failed to deliver notification", "target", target.Name, "error", err)
			failedCount++
			continue
		}

		if err := t.deliveryRepo.RecordDelivery(target.Name, today, len(dishes)); err != nil {
			slog.Error("Failed to record delivery", "target", target.Name, "error", err)
		}
		deliveredCount++
	}

	slog.Info("Task completed",
		"type", "SendMenu",
		"duration", t.GetDuration(),
		"dishes", len(dishes),
		"delivered", deliveredCount,
		"skipped", skippedCount,
		"failed", failedCount)

	return nil
}
