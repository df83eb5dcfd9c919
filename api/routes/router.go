package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foodsaver/foodsaver-backend/api/controllers"
	"github.com/foodsaver/foodsaver-backend/api/middleware"
	"github.com/foodsaver/foodsaver-backend/internal/items"
	"github.com/foodsaver/foodsaver-backend/internal/recipes"
	"github.com/foodsaver/foodsaver-backend/internal/reminders"
	"github.com/foodsaver/foodsaver-backend/pkg/config"
	"github.com/foodsaver/foodsaver-backend/pkg/db"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	itemsService items.Service,
	recipesService recipes.Service,
	dispatcher *reminders.Dispatcher,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ListItems(itemsService, logg))
			r.Post("/", controllers.AddItem(itemsService, logg))
			r.Get("/export", controllers.ExportItemsCSV(itemsService, logg))
			r.Get("/{itemId}", controllers.GetItem(itemsService, logg))
			r.Patch("/{itemId}", controllers.UpdateItem(itemsService, logg))
			r.Delete("/{itemId}", controllers.DeleteItem(itemsService, logg))
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", controllers.ListRecipes(recipesService, logg))
			r.Post("/", controllers.AddRecipe(recipesService, logg))
			r.Get("/suggestions", controllers.SuggestRecipes(recipesService, logg))
			r.Delete("/{recipeId}", controllers.DeleteRecipe(recipesService, logg))
		})

		r.Post("/reminders/send", controllers.TriggerReminders(dispatcher, logg))
	})

	return r
}
