package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is one pantry/fridge entry tracked for expiry.
type Item struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"type:text;not null" json:"name"`
	Quantity     float64    `gorm:"not null;default:1" json:"quantity"`
	Category     string     `gorm:"type:text" json:"category,omitempty"`
	PurchaseDate *time.Time `gorm:"type:date" json:"purchaseDate,omitempty"`
	ExpiryDate   time.Time  `gorm:"type:date;not null;index" json:"expiryDate"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	Notified     bool       `gorm:"not null;default:false" json:"notified"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns the primary key; SQLite has no server-side UUID default.
func (i *Item) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// DaysUntilExpiry returns whole days between asOf and the expiry date,
// negative once the date has passed.
func (i Item) DaysUntilExpiry(asOf time.Time) int {
	expiry := time.Date(i.ExpiryDate.Year(), i.ExpiryDate.Month(), i.ExpiryDate.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(day).Hours() / 24)
}

// UrgencyCategory buckets an item by days remaining: expired, urgent
// (within 3 days), soon (within 14), later.
func (i Item) UrgencyCategory(asOf time.Time) string {
	days := i.DaysUntilExpiry(asOf)
	switch {
	case days < 0:
		return "expired"
	case days <= 3:
		return "urgent"
	case days <= 14:
		return "soon"
	default:
		return "later"
	}
}
