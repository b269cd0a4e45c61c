package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stair-ch/foodstoffi/app/cfg"
	"github.com/stair-ch/foodstoffi/app/database"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler enqueues one SendMenuTask per day at the configured UTC
// wall-clock time. A single worker drains the queue, so runs never
// overlap even when a manual trigger arrives mid-run.
type Scheduler struct {
	pipeline     MenuPipelineInterface
	notifier     NotifierInterface
	targets      TargetSourceInterface
	deliveryRepo database.DeliveryRepository
	notifyAt     time.Duration // offset from UTC midnight
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	taskQueue    chan TaskInterface
}

func NewScheduler(targets TargetSourceInterface, deliveryRepo database.DeliveryRepository,
	pipeline MenuPipelineInterface, notifier NotifierInterface) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())

	notifyAt, err := cfg.ParseNotifyAt(cfg.Get().NotifyAt)
	if err != nil {
		// cfg.Load validated the value already
		notifyAt = 8 * time.Hour
	}

	return &Scheduler{
		pipeline:     pipeline,
		notifier:     notifier,
		targets:      targets,
		deliveryRepo: deliveryRepo,
		notifyAt:     notifyAt,
		ctx:          ctx,
		cancel:       cancel,
		taskQueue:    make(chan TaskInterface, 10),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.worker()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			next := nextRunAt(time.Now().UTC(), s.notifyAt)
			slog.Debug("Next announcement scheduled", "at", next.Format(time.RFC3339))

			timer := time.NewTimer(time.Until(next))
			select {
			case <-s.ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				task := NewSendMenuTask(s.pipeline, s.notifier, s.targets, s.deliveryRepo)
				if err := s.EnqueueTask(task); err != nil {
					slog.Warn("Failed to enqueue SendMenuTask", "error", err)
				}
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "error", retryErr)
					}
				}
			}()
		}
	}
}

// nextRunAt returns the next occurrence of the daily run time strictly
// after now.
func nextRunAt(now time.Time, notifyAt time.Duration) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	runAt := midnight.Add(notifyAt)
	if !runAt.After(now) {
		runAt = runAt.AddDate(0, 0, 1)
	}
	return runAt
}
