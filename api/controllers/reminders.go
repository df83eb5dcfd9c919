package controllers

import (
	"net/http"

	"github.com/foodsaver/foodsaver-backend/api/responses"
	"github.com/foodsaver/foodsaver-backend/internal/reminders"
	"github.com/foodsaver/foodsaver-backend/pkg/logger"
)

// TriggerReminders runs one reminder pass on demand. If the background
// scheduler is mid-tick the run is reported as skipped rather than queued.
func TriggerReminders(dispatcher *reminders.Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := dispatcher.RunOnce(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
