// Package selftest runs quick end-to-end sanity checks against a throwaway
// in-memory store, exercising seeding, the reminder window, and recipe
// matching without touching the real database or any mail transport.
package selftest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/internal/recipes"
	"github.com/foodsaver/foodsaver-backend/internal/reminders"
	"github.com/foodsaver/foodsaver-backend/internal/seed"
	"github.com/foodsaver/foodsaver-backend/pkg/config"
	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
	"github.com/foodsaver/foodsaver-backend/pkg/mailer"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Run executes the self-test suite and returns every failure at once.
func Run(ctx context.Context, logg *logger.Logger) error {
	conn, err := gorm.Open(sqlite.Open("file:selftest?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return fmt.Errorf("open in-memory store: %w", err)
	}
	if err := conn.AutoMigrate(&models.Item{}, &models.Recipe{}); err != nil {
		return fmt.Errorf("migrate in-memory store: %w", err)
	}

	itemsSvc, err := items.NewService(items.NewRepository(conn))
	if err != nil {
		return fmt.Errorf("construct items service: %w", err)
	}
	recipesSvc, err := recipes.NewService(recipes.NewRepository(conn), itemsSvc)
	if err != nil {
		return fmt.Errorf("construct recipes service: %w", err)
	}
	if err := seed.Run(ctx, itemsSvc, recipesSvc, nil); err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}

	var failures error
	failures = multierr.Append(failures, checkSeed(ctx, itemsSvc, recipesSvc))
	failures = multierr.Append(failures, checkRecipeMatching(ctx, recipesSvc))
	failures = multierr.Append(failures, checkReminderWindow(ctx, itemsSvc))
	failures = multierr.Append(failures, checkDisabledNotifier(ctx, logg))
	if failures != nil {
		return failures
	}

	logg.Info(ctx, "self-test passed")
	return nil
}

func checkSeed(ctx context.Context, itemsSvc items.Service, recipesSvc recipes.Service) error {
	pantry, err := itemsSvc.List(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	if len(pantry) == 0 {
		return fmt.Errorf("seed items missing")
	}
	catalog, err := recipesSvc.List(ctx)
	if err != nil {
		return fmt.Errorf("list recipes: %w", err)
	}
	if len(catalog) == 0 {
		return fmt.Errorf("seed recipes missing")
	}
	return nil
}

func checkRecipeMatching(ctx context.Context, recipesSvc recipes.Service) error {
	suggestions, err := recipesSvc.Suggest(ctx)
	if err != nil {
		return fmt.Errorf("suggest recipes: %w", err)
	}
	for _, s := range suggestions {
		if strings.Contains(s.Name, "Egg") {
			return nil
		}
	}
	return fmt.Errorf("recipe matching failed: no egg recipe suggested from seeded pantry")
}

func checkReminderWindow(ctx context.Context, itemsSvc items.Service) error {
	now := time.Now().UTC()
	probe, err := itemsSvc.Add(ctx, items.AddItemInput{
		Name:       "Self-test probe",
		Quantity:   1,
		ExpiryDate: now.AddDate(0, 0, 2).Format(items.DateFormat),
	})
	if err != nil {
		return fmt.Errorf("add probe item: %w", err)
	}

	due, err := itemsSvc.DueForReminder(ctx, 3, now)
	if err != nil {
		return fmt.Errorf("evaluate horizon 3: %w", err)
	}
	if !containsItem(due, probe.ID.String()) {
		return fmt.Errorf("probe expiring in 2 days not due within 3-day horizon")
	}

	due, err = itemsSvc.DueForReminder(ctx, 1, now)
	if err != nil {
		return fmt.Errorf("evaluate horizon 1: %w", err)
	}
	if containsItem(due, probe.ID.String()) {
		return fmt.Errorf("probe expiring in 2 days unexpectedly due within 1-day horizon")
	}

	expired, err := itemsSvc.Add(ctx, items.AddItemInput{
		Name:       "Self-test expired probe",
		Quantity:   1,
		ExpiryDate: now.AddDate(0, 0, -1).Format(items.DateFormat),
	})
	if err != nil {
		return fmt.Errorf("add expired probe: %w", err)
	}
	due, err = itemsSvc.DueForReminder(ctx, 3, now)
	if err != nil {
		return fmt.Errorf("evaluate with expired probe: %w", err)
	}
	if !containsItem(due, expired.ID.String()) {
		return fmt.Errorf("already-expired item missing from due set")
	}

	ids := []uuid.UUID{probe.ID, expired.ID}
	if err := itemsSvc.MarkNotified(ctx, ids); err != nil {
		return fmt.Errorf("mark notified: %w", err)
	}
	if err := itemsSvc.MarkNotified(ctx, ids); err != nil {
		return fmt.Errorf("repeat mark notified must be a no-op: %w", err)
	}
	due, err = itemsSvc.DueForReminder(ctx, 3, now)
	if err != nil {
		return fmt.Errorf("evaluate after marking: %w", err)
	}
	if containsItem(due, probe.ID.String()) || containsItem(due, expired.ID.String()) {
		return fmt.Errorf("marked items must leave the due set")
	}
	return nil
}

func checkDisabledNotifier(ctx context.Context, logg *logger.Logger) error {
	sender := mailer.New(config.SMTPConfig{})
	notifier, err := reminders.NewEmailNotifier(sender, logg)
	if err != nil {
		return fmt.Errorf("construct notifier: %w", err)
	}
	result, err := notifier.Notify(ctx, []models.Item{{Name: "Self-test probe", Quantity: 1, ExpiryDate: time.Now()}}, time.Now())
	if err != nil {
		return fmt.Errorf("disabled notifier returned error: %w", err)
	}
	if !result.Sent || result.Dispatched {
		return fmt.Errorf("disabled notifier must report success without sending, got %+v", result)
	}
	return nil
}

func containsItem(batch []models.Item, id string) bool {
	for _, it := range batch {
		if it.ID.String() == id {
			return true
		}
	}
	return false
}
