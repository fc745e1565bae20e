package api

import (
	"context"
	"net/http"
	"time"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/models"
)

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Reports uptime and whether the flight cache is reachable.
// @Tags Misc
// @Success 200 {object} models.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(cache common.FlightCache, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]models.ServiceStatus)

		cacheStatus := "ok"
		cacheDetails := cache.Name() + " cache reachable"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			cacheStatus = "down"
			cacheDetails = err.Error()
		}
		services["cache"] = models.ServiceStatus{
			Status:  cacheStatus,
			Details: cacheDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		uptime := time.Since(upSince).Round(time.Second).String()

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}
		common.RespondJSON(w, models.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   uptime,
		}, code)
	}
}
