package api

import (
	"net/http"
	"time"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/models"
	"conflict-zero/tower/internal/services"
)

// FlightsHandler godoc
// @Summary      List flights in a data file
// @Description  Loads and normalises the flights held in a JSON file.
// @Tags         Flights
// @Produce      json
// @Param        file  query    string  false  "JSON filename"  default(canadian_flights_250.json)
// @Success      200   {array}  models.FlightDto
// @Failure      400,404,422,500  {object} models.APIResponse
// @Router       /api/flights [get]
func FlightsHandler(fltSvc *services.FlightsService, defaultFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		file := r.URL.Query().Get("file")
		if file == "" {
			file = defaultFile
		}

		flights, err := fltSvc.GetFlights(r.Context(), file)
		if err != nil {
			respondServiceError(w, initTime, file, err)
			return
		}

		common.RespondJSON(w, models.ToDtos(flights))
	}
}
