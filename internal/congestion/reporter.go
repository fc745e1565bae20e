package congestion

import (
	"fmt"
	"time"

	"conflict-zero/tower/internal/models"
)

// TimeLayout is the minute-precision UTC format used for window bounds.
const TimeLayout = "2006-01-02 15:04"

// Recommendation returns the advisory attached to every event for a window size.
func Recommendation(windowMinutes int) string {
	return fmt.Sprintf("Shift low-priority flights by %d–%d minutes", windowMinutes/2, windowMinutes)
}

// Report formats a congested window as an event.
func Report(airport string, w Window, windowMinutes int) models.CongestionEvent {
	end := w.AnchorUnix + int64(windowMinutes)*60

	ids := make([]string, 0, len(w.Flights))
	for _, f := range w.Flights {
		ids = append(ids, f.ACID)
	}

	return models.CongestionEvent{
		Airport:        airport,
		WindowStart:    formatUnix(w.AnchorUnix),
		WindowEnd:      formatUnix(end),
		StartUnix:      w.AnchorUnix,
		EndUnix:        end,
		FlightCount:    w.Count(),
		FlightIDs:      ids,
		Recommendation: Recommendation(windowMinutes),
	}
}

func formatUnix(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(TimeLayout)
}
