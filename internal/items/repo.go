package items

import (
	"context"
	"time"

	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for pantry items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.Item) error
	List(ctx context.Context) ([]models.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DueForReminder(ctx context.Context, cutoff time.Time) ([]models.Item, error)
	MarkNotified(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an item repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// List returns every item soonest-expiring first; surfacing urgency is the
// point of the listing.
func (r *repositoryImpl) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Order("expiry_date ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Item{})
	return result.RowsAffected, result.Error
}

// DueForReminder returns unnotified items expiring on or before the cutoff.
// Expired items satisfy the predicate; they still warrant an alert.
func (r *repositoryImpl) DueForReminder(ctx context.Context, cutoff time.Time) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Where("notified = ? AND expiry_date <= ?", false, cutoff).
		Order("expiry_date ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// MarkNotified flips notified for the given ids. Already-notified and
// unknown ids are skipped silently, making retried marks idempotent.
func (r *repositoryImpl) MarkNotified(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id IN ? AND notified = ?", ids, false).
		UpdateColumn("notified", true)
	return result.RowsAffected, result.Error
}
