package routes

import (
	"net/http"

	"github.com/routinely/routinely/internal/app"
	"github.com/routinely/routinely/internal/handler"
	"github.com/routinely/routinely/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	activity := handler.NewActivityHandler(app.ActivityService)
	goal := handler.NewGoalHandler(app.GoalService)

	mux := http.NewServeMux()

	// Write endpoints share one rate limiter
	rateLimiter := middleware.RateLimitWrites(app.Cfg.RateLimitPerMinute)

	mux.HandleFunc("GET /health", health.Health)

	// Activities
	mux.HandleFunc("POST /api/activities", rateLimiter(activity.Create))
	mux.HandleFunc("GET /api/activities", activity.List)
	mux.HandleFunc("GET /api/activities/{id}", activity.Get)
	mux.HandleFunc("DELETE /api/activities/{id}", rateLimiter(activity.Delete))

	// Goals (one per activity)
	mux.HandleFunc("POST /api/activities/{id}/goal", rateLimiter(goal.Create))
	mux.HandleFunc("PUT /api/activities/{id}/goal", rateLimiter(goal.Replace))
	mux.HandleFunc("GET /api/activities/{id}/goal", goal.Get)
	mux.HandleFunc("DELETE /api/goals/{id}", rateLimiter(goal.Delete))

	// Effective-date preview for the goal creation flow
	mux.HandleFunc("POST /api/goals/effective-date", goal.EffectiveDate)

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogging,
	)
}
