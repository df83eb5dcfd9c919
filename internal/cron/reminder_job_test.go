package cron

import (
	"context"
	"testing"
	"time"

	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/internal/reminders"
	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	pkgerrors "github.com/foodsaver/foodsaver-backend/pkg/errors"
	"github.com/google/uuid"
)

type fakeItemStore struct {
	items.Service

	due    []models.Item
	marked [][]uuid.UUID
}

func (f *fakeItemStore) DueForReminder(context.Context, int, time.Time) ([]models.Item, error) {
	return f.due, nil
}

func (f *fakeItemStore) MarkNotified(_ context.Context, ids []uuid.UUID) error {
	f.marked = append(f.marked, ids)
	f.due = nil
	return nil
}

type fakeNotifier struct {
	err   error
	calls int
}

func (f *fakeNotifier) Notify(context.Context, []models.Item, time.Time) (reminders.Result, error) {
	f.calls++
	if f.err != nil {
		return reminders.Result{Detail: f.err.Error()}, f.err
	}
	return reminders.Result{Sent: true, Dispatched: true}, nil
}

func newReminderJob(t *testing.T, store *fakeItemStore, notifier *fakeNotifier) Job {
	t.Helper()
	logg := testLogger()
	eval, err := reminders.NewEvaluator(store, 3)
	if err != nil {
		t.Fatalf("construct evaluator: %v", err)
	}
	dispatcher, err := reminders.NewDispatcher(reminders.DispatcherParams{
		Evaluator: eval,
		Notifier:  notifier,
		Logger:    logg,
	})
	if err != nil {
		t.Fatalf("construct dispatcher: %v", err)
	}
	job, err := NewReminderJob(ReminderJobParams{Logger: logg, Dispatcher: dispatcher})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	return job
}

func TestReminderJobMarksBatchOnSuccess(t *testing.T) {
	store := &fakeItemStore{due: []models.Item{
		{ID: uuid.New(), Name: "Milk"},
		{ID: uuid.New(), Name: "Yogurt"},
	}}
	notifier := &fakeNotifier{}
	job := newReminderJob(t, store, notifier)

	if got := job.Name(); got != "expiry-reminder" {
		t.Fatalf("unexpected job name %q", got)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if notifier.calls != 1 {
		t.Fatalf("expected one dispatch, got %d", notifier.calls)
	}
	if len(store.marked) != 1 || len(store.marked[0]) != 2 {
		t.Fatalf("expected both items marked, got %v", store.marked)
	}
}

func TestReminderJobLeavesBatchOnFailure(t *testing.T) {
	store := &fakeItemStore{due: []models.Item{{ID: uuid.New(), Name: "Milk"}}}
	notifier := &fakeNotifier{err: pkgerrors.New(pkgerrors.CodeTransport, "smtp unreachable")}
	job := newReminderJob(t, store, notifier)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected job failure")
	}
	if len(store.marked) != 0 {
		t.Fatalf("failed dispatch must mark nothing, got %v", store.marked)
	}
	if len(store.due) != 1 {
		t.Fatal("expected batch to stay eligible for the next tick")
	}
}
