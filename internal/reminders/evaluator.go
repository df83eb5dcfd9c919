package reminders

import (
	"context"
	"time"

	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	pkgerrors "github.com/foodsaver/foodsaver-backend/pkg/errors"
	"github.com/google/uuid"
)

const defaultHorizonDays = 3

// Evaluator decides which items need a reminder for a given moment and
// records confirmed dispatches. Evaluation and marking are separate steps:
// a failed dispatch must never mark anything.
type Evaluator struct {
	items       items.Service
	horizonDays int
}

// NewEvaluator wires the evaluator against the item store.
func NewEvaluator(itemsSvc items.Service, horizonDays int) (*Evaluator, error) {
	if itemsSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "items service required")
	}
	if horizonDays <= 0 {
		horizonDays = defaultHorizonDays
	}
	return &Evaluator{items: itemsSvc, horizonDays: horizonDays}, nil
}

// HorizonDays returns the configured reminder window.
func (e *Evaluator) HorizonDays() int {
	return e.horizonDays
}

// Evaluate returns the unnotified items expiring within the horizon,
// including items already past their date.
func (e *Evaluator) Evaluate(ctx context.Context, asOf time.Time) ([]models.Item, error) {
	return e.items.DueForReminder(ctx, e.horizonDays, asOf)
}

// MarkNotified records a confirmed dispatch for the given items. Marking an
// already-notified item is a no-op.
func (e *Evaluator) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	return e.items.MarkNotified(ctx, ids)
}
