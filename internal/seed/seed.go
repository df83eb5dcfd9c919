// Package seed loads a small set of sample pantry data for demos and
// local development.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/internal/recipes"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
)

type sampleItem struct {
	name         string
	quantity     float64
	category     string
	purchaseDays int
	expiryDays   int
	notes        string
}

// Expiry offsets are relative to the seeding day so the sample pantry always
// has items inside and outside the default reminder window.
var sampleItems = []sampleItem{
	{name: "Milk", quantity: 1, category: "dairy", purchaseDays: -5, expiryDays: 3, notes: "2% lactose-free, 1 L"},
	{name: "Eggs", quantity: 12, category: "dairy", purchaseDays: -10, expiryDays: 4, notes: "Large"},
	{name: "Spinach", quantity: 1, category: "produce", purchaseDays: -2, expiryDays: 2, notes: "Baby spinach, 1 bag"},
	{name: "Tomato", quantity: 3, category: "produce", purchaseDays: -3, expiryDays: 6},
	{name: "Cheddar cheese", quantity: 1, category: "dairy", purchaseDays: -40, expiryDays: 32, notes: "200 g"},
	{name: "Bread", quantity: 1, category: "bakery", purchaseDays: -1, expiryDays: 2, notes: "1 loaf"},
}

var sampleRecipes = []recipes.AddRecipeInput{
	{
		Name:         "Cheesy Scrambled Eggs",
		Ingredients:  "eggs,cheddar cheese,butter,salt,pepper",
		Instructions: "Beat eggs, melt butter, cook gently, add cheese.",
	},
	{
		Name:         "Tomato Spinach Salad",
		Ingredients:  "tomato,spinach,olive oil,salt,pepper",
		Instructions: "Toss chopped tomato with spinach and dressing.",
	},
	{
		Name:         "French Toast",
		Ingredients:  "bread,eggs,milk,cinnamon,butter",
		Instructions: "Dip bread in egg-milk mix and fry.",
	},
}

// Run inserts the sample items and recipes through the regular services so
// the data passes the same validation as user input.
func Run(ctx context.Context, itemsSvc items.Service, recipesSvc recipes.Service, logg *logger.Logger) error {
	now := time.Now().UTC()
	for _, s := range sampleItems {
		input := items.AddItemInput{
			Name:       s.name,
			Quantity:   s.quantity,
			Category:   s.category,
			ExpiryDate: now.AddDate(0, 0, s.expiryDays).Format(items.DateFormat),
			Notes:      s.notes,
		}
		if s.purchaseDays != 0 {
			input.PurchaseDate = now.AddDate(0, 0, s.purchaseDays).Format(items.DateFormat)
		}
		if _, err := itemsSvc.Add(ctx, input); err != nil {
			return fmt.Errorf("seed item %s: %w", s.name, err)
		}
	}
	for _, r := range sampleRecipes {
		if _, err := recipesSvc.Add(ctx, r); err != nil {
			return fmt.Errorf("seed recipe %s: %w", r.Name, err)
		}
	}
	if logg != nil {
		lctx := logg.WithFields(ctx, map[string]any{
			"items":   len(sampleItems),
			"recipes": len(sampleRecipes),
		})
		logg.Info(lctx, "sample data seeded")
	}
	return nil
}
