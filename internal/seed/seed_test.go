package seed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/internal/recipes"
	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunSeedsItemsAndRecipes(t *testing.T) {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Item{}, &models.Recipe{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	itemsSvc, err := items.NewService(items.NewRepository(conn))
	if err != nil {
		t.Fatalf("construct items service: %v", err)
	}
	recipesSvc, err := recipes.NewService(recipes.NewRepository(conn), itemsSvc)
	if err != nil {
		t.Fatalf("construct recipes service: %v", err)
	}

	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed-test", Output: io.Discard})
	if err := Run(ctx, itemsSvc, recipesSvc, logg); err != nil {
		t.Fatalf("run: %v", err)
	}

	pantry, err := itemsSvc.List(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(pantry) != len(sampleItems) {
		t.Fatalf("expected %d items, got %d", len(sampleItems), len(pantry))
	}
	catalog, err := recipesSvc.List(ctx)
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	if len(catalog) != len(sampleRecipes) {
		t.Fatalf("expected %d recipes, got %d", len(sampleRecipes), len(catalog))
	}
}
