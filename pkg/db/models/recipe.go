package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is a stored recipe matched against pantry contents.
type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions string    `gorm:"type:text" json:"instructions,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientList splits the comma-separated ingredients, lowercased and
// trimmed.
func (r Recipe) IngredientList() []string {
	var out []string
	for _, ing := range strings.Split(r.Ingredients, ",") {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing != "" {
			out = append(out, ing)
		}
	}
	return out
}
