package recipes

import (
	"context"
	"sort"
	"strings"

	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/pkg/db/models"
	pkgerrors "github.com/foodsaver/foodsaver-backend/pkg/errors"
	"github.com/google/uuid"
)

// suggestionThreshold is the minimum share of a recipe's ingredients that
// must be on hand before it is suggested.
const suggestionThreshold = 0.5

// AddRecipeInput carries the fields accepted when creating a recipe.
type AddRecipeInput struct {
	Name         string `json:"name" validate:"required"`
	Ingredients  string `json:"ingredients" validate:"required"`
	Instructions string `json:"instructions"`
}

// Suggestion pairs a recipe with its pantry match score.
type Suggestion struct {
	models.Recipe
	Score   float64  `json:"score"`
	Matched []string `json:"matched"`
}

// Service defines recipe catalog and suggestion operations.
type Service interface {
	Add(ctx context.Context, input AddRecipeInput) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Suggest(ctx context.Context) ([]Suggestion, error)
}

type service struct {
	repo  Repository
	items items.Service
}

// NewService wires recipe dependencies.
func NewService(repo Repository, itemsSvc items.Service) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "recipes repository required")
	}
	if itemsSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "items service required")
	}
	return &service{repo: repo, items: itemsSvc}, nil
}

func (s *service) Add(ctx context.Context, input AddRecipeInput) (*models.Recipe, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	recipe := &models.Recipe{
		Name:         name,
		Ingredients:  strings.TrimSpace(input.Ingredients),
		Instructions: input.Instructions,
	}
	if len(recipe.IngredientList()) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one ingredient is required")
	}
	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recipe")
	}
	return recipe, nil
}

func (s *service) List(ctx context.Context) ([]models.Recipe, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recipes")
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete recipe")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
	}
	return nil
}

// Suggest scores every recipe against the pantry: a recipe qualifies when at
// least half of its ingredients match item names, best matches first.
func (s *service) Suggest(ctx context.Context) ([]Suggestion, error) {
	views, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	available := map[string]bool{}
	for _, view := range views {
		available[strings.ToLower(strings.TrimSpace(view.Name))] = true
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recipes")
	}

	var out []Suggestion
	for _, recipe := range rows {
		required := recipe.IngredientList()
		if len(required) == 0 {
			continue
		}
		var matched []string
		for _, ing := range required {
			if available[ing] {
				matched = append(matched, ing)
			}
		}
		score := float64(len(matched)) / float64(len(required))
		if score >= suggestionThreshold {
			out = append(out, Suggestion{Recipe: recipe, Score: score, Matched: matched})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out, nil
}
