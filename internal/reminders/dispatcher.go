package reminders

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	pkgerrors "github.com/foodsaver/foodsaver-backend/pkg/errors"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
	"github.com/google/uuid"
)

// TickResult summarizes one reminder run.
type TickResult struct {
	// Skipped is true when another run was already in flight.
	Skipped    bool   `json:"skipped"`
	Evaluated  int    `json:"evaluated"`
	Dispatched bool   `json:"dispatched"`
	Marked     int    `json:"marked"`
	Detail     string `json:"detail"`
}

// Dispatcher runs the full reminder pass: evaluate, notify, then mark the
// batch as notified only after a confirmed dispatch. At most one run is in
// flight at a time; concurrent callers get a skipped result instead of
// queueing a second pass.
type Dispatcher struct {
	evaluator *Evaluator
	notifier  Notifier
	logg      *logger.Logger
	now       func() time.Time

	inFlight atomic.Bool
}

type DispatcherParams struct {
	Evaluator *Evaluator
	Notifier  Notifier
	Logger    *logger.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

func NewDispatcher(params DispatcherParams) (*Dispatcher, error) {
	if params.Evaluator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "evaluator required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		evaluator: params.Evaluator,
		notifier:  params.Notifier,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// RunOnce performs a single reminder pass. Items stay unmarked whenever the
// dispatch fails so the next pass picks them up again.
func (d *Dispatcher) RunOnce(ctx context.Context) (TickResult, error) {
	if !d.inFlight.CompareAndSwap(false, true) {
		d.logg.Warn(ctx, "reminder run already in flight, skipping")
		return TickResult{Skipped: true, Detail: "reminder run already in flight"}, nil
	}
	defer d.inFlight.Store(false)

	asOf := d.now()
	batch, err := d.evaluator.Evaluate(ctx, asOf)
	if err != nil {
		return TickResult{Detail: "evaluation failed"}, err
	}
	if len(batch) == 0 {
		return TickResult{Detail: "no items due"}, nil
	}

	result, err := d.notifier.Notify(ctx, batch, asOf)
	if err != nil {
		return TickResult{Evaluated: len(batch), Detail: result.Detail}, err
	}

	// A disabled transport still counts as a successful notify, so the batch
	// is marked either way and never re-alerted for the same expiry window.
	ids := itemIDs(batch)
	if err := d.evaluator.MarkNotified(ctx, ids); err != nil {
		return TickResult{Evaluated: len(batch), Dispatched: result.Dispatched, Detail: "marking notified failed"}, err
	}

	lctx := d.logg.WithFields(ctx, map[string]any{
		"items":      len(batch),
		"dispatched": result.Dispatched,
	})
	d.logg.Info(lctx, "reminder batch handled")
	return TickResult{
		Evaluated:  len(batch),
		Dispatched: result.Dispatched,
		Marked:     len(ids),
		Detail:     result.Detail,
	}, nil
}

func itemIDs(batch []models.Item) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(batch))
	for _, it := range batch {
		ids = append(ids, it.ID)
	}
	return ids
}
