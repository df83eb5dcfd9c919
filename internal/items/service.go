package items

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	pkgerrors "github.com/foodsaver/foodsaver-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the item store operations.
type Service interface {
	Add(ctx context.Context, input AddItemInput) (*models.Item, error)
	List(ctx context.Context) ([]ItemView, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*models.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DueForReminder(ctx context.Context, horizonDays int, asOf time.Time) ([]models.Item, error)
	MarkNotified(ctx context.Context, ids []uuid.UUID) error
	ExportCSV(ctx context.Context, w io.Writer) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the item store dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "items repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Add(ctx context.Context, input AddItemInput) (*models.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	expiry, err := parseDate(input.ExpiryDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expiry date; use YYYY-MM-DD")
	}

	item := &models.Item{
		Name:       name,
		Quantity:   input.Quantity,
		Category:   strings.TrimSpace(input.Category),
		ExpiryDate: expiry,
		Notes:      input.Notes,
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if input.PurchaseDate != "" {
		purchase, err := parseDate(input.PurchaseDate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purchase date; use YYYY-MM-DD")
		}
		item.PurchaseDate = &purchase
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return item, nil
}

func (s *service) List(ctx context.Context) ([]ItemView, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	asOf := s.now().UTC()
	views := make([]ItemView, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewItemView(row, asOf))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find item")
	}
	return item, nil
}

// Update applies partial edits. Changing the expiry date re-arms the
// reminder: notified flips back to false so the new window is not missed.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*models.Item, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		updates["name"] = name
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
		}
		updates["quantity"] = *input.Quantity
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.PurchaseDate != nil {
		if *input.PurchaseDate == "" {
			updates["purchase_date"] = nil
		} else {
			purchase, err := parseDate(*input.PurchaseDate)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purchase date; use YYYY-MM-DD")
			}
			updates["purchase_date"] = purchase
		}
	}
	if input.ExpiryDate != nil {
		expiry, err := parseDate(*input.ExpiryDate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expiry date; use YYYY-MM-DD")
		}
		updates["expiry_date"] = expiry
		if !sameDate(current.ExpiryDate, expiry) {
			updates["notified"] = false
		}
	}

	if len(updates) == 0 {
		return current, nil
	}

	if _, err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}

func (s *service) DueForReminder(ctx context.Context, horizonDays int, asOf time.Time) ([]models.Item, error) {
	cutoff := startOfDay(asOf).AddDate(0, 0, horizonDays)
	// end of the horizon day, so items expiring that day are included
	cutoff = cutoff.Add(24*time.Hour - time.Nanosecond)

	rows, err := s.repo.DueForReminder(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query items due for reminder")
	}
	return rows, nil
}

func (s *service) MarkNotified(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.repo.MarkNotified(ctx, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark items notified")
	}
	return nil
}

func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items for export")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name", "quantity", "category", "purchase_date", "expiry_date", "notes", "notified"}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for _, row := range rows {
		purchase := ""
		if row.PurchaseDate != nil {
			purchase = row.PurchaseDate.Format(DateFormat)
		}
		record := []string{
			row.ID.String(),
			row.Name,
			fmt.Sprintf("%g", row.Quantity),
			row.Category,
			purchase,
			row.ExpiryDate.Format(DateFormat),
			row.Notes,
			fmt.Sprintf("%t", row.Notified),
		}
		if err := writer.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}
	writer.Flush()
	return writer.Error()
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
