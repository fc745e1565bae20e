package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/congestion"
	"conflict-zero/tower/internal/constants"
	"conflict-zero/tower/internal/ingestion"
	"conflict-zero/tower/internal/logging"
	"conflict-zero/tower/internal/services"
)

// respondServiceError maps service and ingestion errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, initTime time.Time, file string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidFileName):
		common.RespondError(w, initTime, nil, constants.MsgInvalidFileName, http.StatusBadRequest)
	case errors.Is(err, congestion.ErrInvalidWindow), errors.Is(err, congestion.ErrInvalidThreshold):
		common.RespondError(w, initTime, err, constants.MsgInvalidQueryParam, http.StatusUnprocessableEntity)
	case errors.Is(err, ingestion.ErrDataUnavailable):
		reason, _ := ingestion.ReasonOf(err)
		switch reason {
		case ingestion.ReasonNotFound:
			common.RespondError(w, initTime, nil, fmt.Sprintf(constants.MsgFileNotFound, file), http.StatusNotFound)
		case ingestion.ReasonMalformed:
			common.RespondError(w, initTime, nil, fmt.Sprintf(constants.MsgFileMalformed, file), http.StatusUnprocessableEntity)
		default:
			common.RespondError(w, initTime, nil, fmt.Sprintf(constants.MsgFileUnreadable, file), http.StatusInternalServerError)
		}
	default:
		logging.Error("Unhandled service error", "file", file, "error", err.Error())
		common.RespondError(w, initTime, nil, constants.MsgInternalError, http.StatusInternalServerError)
	}
}
