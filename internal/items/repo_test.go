package items

import (
	"context"
	"testing"
	"time"

	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	"github.com/google/uuid"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateFormat, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed.UTC()
}

func TestRepositoryListOrdersByExpiryAscending(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	later := &models.Item{Name: "Cheese", ExpiryDate: date(t, "2026-10-01")}
	soon := &models.Item{Name: "Milk", ExpiryDate: date(t, "2026-09-02")}
	middle := &models.Item{Name: "Eggs", ExpiryDate: date(t, "2026-09-10")}
	for _, item := range []*models.Item{later, soon, middle} {
		if err := repo.Create(ctx, item); err != nil {
			t.Fatalf("create %s: %v", item.Name, err)
		}
	}

	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 items, got %d", len(rows))
	}
	if rows[0].Name != "Milk" || rows[1].Name != "Eggs" || rows[2].Name != "Cheese" {
		t.Fatalf("unexpected order: %s, %s, %s", rows[0].Name, rows[1].Name, rows[2].Name)
	}
}

func TestRepositoryDueForReminderIncludesExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	expired := &models.Item{Name: "Spinach", ExpiryDate: date(t, "2026-08-01")}
	inside := &models.Item{Name: "Milk", ExpiryDate: date(t, "2026-09-01")}
	outside := &models.Item{Name: "Cheese", ExpiryDate: date(t, "2026-12-01")}
	notifiedAlready := &models.Item{Name: "Bread", ExpiryDate: date(t, "2026-08-30"), Notified: true}
	for _, item := range []*models.Item{expired, inside, outside, notifiedAlready} {
		if err := repo.Create(ctx, item); err != nil {
			t.Fatalf("create %s: %v", item.Name, err)
		}
	}

	cutoff := date(t, "2026-09-02")
	rows, err := repo.DueForReminder(ctx, cutoff)
	if err != nil {
		t.Fatalf("due for reminder: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 due items, got %d", len(rows))
	}
	if rows[0].Name != "Spinach" || rows[1].Name != "Milk" {
		t.Fatalf("unexpected due items: %s, %s", rows[0].Name, rows[1].Name)
	}
}

func TestRepositoryMarkNotifiedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	item := &models.Item{Name: "Milk", ExpiryDate: date(t, "2026-09-02")}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := repo.MarkNotified(ctx, []uuid.UUID{item.ID})
	if err != nil {
		t.Fatalf("mark notified: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row marked, got %d", rows)
	}

	rows, err = repo.MarkNotified(ctx, []uuid.UUID{item.ID, uuid.New()})
	if err != nil {
		t.Fatalf("second mark notified: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected repeated mark to be a no-op, got %d rows", rows)
	}

	stored, err := repo.FindByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !stored.Notified {
		t.Fatal("expected item to remain notified")
	}
}

func TestRepositoryDeleteReportsRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	item := &models.Item{Name: "Milk", ExpiryDate: date(t, "2026-09-02")}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := repo.Delete(ctx, item.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row deleted, got %d", rows)
	}

	rows, err = repo.Delete(ctx, item.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows on repeat delete, got %d", rows)
	}
}
