package cron

import (
	"context"
	"fmt"

	"github.com/foodsaver/foodsaver-backend/internal/reminders"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
)

// ReminderJobParams configure the expiry reminder job.
type ReminderJobParams struct {
	Logger     *logger.Logger
	Dispatcher *reminders.Dispatcher
}

type reminderJob struct {
	logg       *logger.Logger
	dispatcher *reminders.Dispatcher
}

// NewReminderJob wraps the reminder dispatcher as a scheduled job.
func NewReminderJob(params ReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	return &reminderJob{logg: params.Logger, dispatcher: params.Dispatcher}, nil
}

func (j *reminderJob) Name() string { return "expiry-reminder" }

func (j *reminderJob) Run(ctx context.Context) error {
	result, err := j.dispatcher.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("expiry reminder: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"evaluated":  result.Evaluated,
		"dispatched": result.Dispatched,
		"marked":     result.Marked,
		"skipped":    result.Skipped,
	})
	j.logg.Info(logCtx, "expiry reminder pass complete")
	return nil
}
