package api

import (
	"net/http"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/constants"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// RootHandler handles GET /
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.RespondJSON(w, map[string]string{
			"message": constants.ServiceName,
			"version": constants.ServiceVersion,
		})
	}
}

// StatusHandler handles GET /api/health
func StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.RespondJSON(w, map[string]string{
			"status":  "healthy",
			"service": constants.ServiceName,
		})
	}
}

// Flights serves GET /api/flights
func (h *Handlers) Flights() http.HandlerFunc {
	return FlightsHandler(h.deps.Services.Flights, h.deps.Config.DefaultFile)
}

// AirportCongestion serves GET /api/flights/{file}/congestion/airport
func (h *Handlers) AirportCongestion() http.HandlerFunc {
	cfg := h.deps.Config.Congestion
	return AirportCongestionHandler(h.deps.Services.Congestion, cfg.WindowMinutes, cfg.Threshold)
}
