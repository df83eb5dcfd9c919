package items

import (
	"time"

	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// AddItemInput carries the fields accepted when creating an item.
type AddItemInput struct {
	Name         string  `json:"name" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	Category     string  `json:"category"`
	PurchaseDate string  `json:"purchaseDate"`
	ExpiryDate   string  `json:"expiryDate" validate:"required"`
	Notes        string  `json:"notes"`
}

// UpdateItemInput carries partial edits; nil fields are left untouched.
type UpdateItemInput struct {
	Name         *string  `json:"name"`
	Quantity     *float64 `json:"quantity"`
	Category     *string  `json:"category"`
	PurchaseDate *string  `json:"purchaseDate"`
	ExpiryDate   *string  `json:"expiryDate"`
	Notes        *string  `json:"notes"`
}

// ItemView decorates a stored item with the derived urgency fields the UI
// sorts and color-codes by.
type ItemView struct {
	models.Item
	DaysUntilExpiry int    `json:"daysUntilExpiry"`
	Urgency         string `json:"urgency"`
}

// NewItemView computes the derived fields relative to asOf.
func NewItemView(item models.Item, asOf time.Time) ItemView {
	return ItemView{
		Item:            item,
		DaysUntilExpiry: item.DaysUntilExpiry(asOf),
		Urgency:         item.UrgencyCategory(asOf),
	}
}
