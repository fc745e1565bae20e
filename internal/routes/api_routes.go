package routes

import (
	"conflict-zero/tower/internal/api"
	"conflict-zero/tower/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers the dashboard API routes
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter) {
	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Get("/health", api.StatusHandler())

		apiRouter.Group(func(limited chi.Router) {
			limited.Use(limiter.Middleware)

			limited.Get("/flights", handlers.Flights())
			limited.Get("/flights/{file}/congestion/airport", handlers.AirportCongestion())
		})
	})
}
