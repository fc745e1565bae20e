package api

import (
	"net/http"
	"strconv"
	"time"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/constants"
	"conflict-zero/tower/internal/services"

	"github.com/go-chi/chi/v5"
)

// AirportCongestionHandler godoc
// @Summary      Detect airport departure congestion
// @Description  Flags windows where more than threshold flights depart one airport.
// @Tags         Congestion
// @Produce      json
// @Param        file            path     string  true   "JSON filename"
// @Param        window_minutes  query    int     false  "Time window size in minutes"        default(10)
// @Param        threshold       query    int     false  "Maximum flights allowed in window"  default(3)
// @Success      200             {array}  models.CongestionEvent
// @Failure      400,404,422,500 {object} models.APIResponse
// @Router       /api/flights/{file}/congestion/airport [get]
func AirportCongestionHandler(congSvc *services.CongestionService, defaultWindow, defaultThreshold int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		file := chi.URLParam(r, "file")

		window, ok := intQuery(r, "window_minutes", defaultWindow)
		if !ok {
			common.RespondError(w, initTime, nil, constants.MsgInvalidQueryParam+": window_minutes", http.StatusUnprocessableEntity)
			return
		}
		threshold, ok := intQuery(r, "threshold", defaultThreshold)
		if !ok {
			common.RespondError(w, initTime, nil, constants.MsgInvalidQueryParam+": threshold", http.StatusUnprocessableEntity)
			return
		}

		events, err := congSvc.AirportCongestion(r.Context(), file, window, threshold)
		if err != nil {
			respondServiceError(w, initTime, file, err)
			return
		}

		common.RespondJSON(w, events)
	}
}

func intQuery(r *http.Request, name string, def int) (int, bool) {
	qs := r.URL.Query().Get(name)
	if qs == "" {
		return def, true
	}
	v, err := strconv.Atoi(qs)
	if err != nil {
		return 0, false
	}
	return v, true
}
