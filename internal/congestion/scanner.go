package congestion

import (
	"sort"

	"conflict-zero/tower/internal/models"
)

// Window is a half-open slice [Start, End) of an airport's sorted departures
// together with the anchor time it was measured from.
type Window struct {
	Start      int
	End        int
	AnchorUnix int64
	Flights    []models.Flight
}

// Count is the number of departures captured by the window.
func (w Window) Count() int {
	return w.End - w.Start
}

// windowCursor walks a time-sorted departure list and yields each window
// whose population exceeds the threshold. After a window is yielded the
// anchor jumps past every flight it captured, so yielded windows never share
// a flight.
type windowCursor struct {
	flights       []models.Flight
	windowSeconds int64
	threshold     int

	i, j int
	// covered is the end index of the last yielded window. No later window
	// may start before it.
	covered int
}

// newWindowCursor sorts a copy of flights by departure time. Equal times keep
// their input order.
func newWindowCursor(flights []models.Flight, windowMinutes, threshold int) *windowCursor {
	sorted := make([]models.Flight, len(flights))
	copy(sorted, flights)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].DepartureUnix() < sorted[b].DepartureUnix()
	})
	return &windowCursor{
		flights:       sorted,
		windowSeconds: int64(windowMinutes) * 60,
		threshold:     threshold,
	}
}

// Next returns the next congested window, or false once the list is exhausted.
func (c *windowCursor) Next() (Window, bool) {
	n := len(c.flights)
	for c.i < n {
		anchor := c.flights[c.i].DepartureUnix()
		limit := anchor + c.windowSeconds
		if c.j < c.i {
			c.j = c.i
		}
		for c.j < n && c.flights[c.j].DepartureUnix() < limit {
			c.j++
		}

		// An empty window only happens for a non-positive window size.
		if c.j > c.i && c.j-c.i > c.threshold {
			w := Window{
				Start:      c.i,
				End:        c.j,
				AnchorUnix: anchor,
				Flights:    c.flights[c.i:c.j:c.j],
			}
			c.covered = c.j
			c.i = c.j
			return w, true
		}
		c.i++
	}
	return Window{}, false
}

// Covered returns the index up to which departures have been attributed to
// a yielded window.
func (c *windowCursor) Covered() int {
	return c.covered
}

// Scan returns every congested window for one airport's departures.
func Scan(flights []models.Flight, windowMinutes, threshold int) []Window {
	cursor := newWindowCursor(flights, windowMinutes, threshold)
	var windows []Window
	for {
		w, ok := cursor.Next()
		if !ok {
			return windows
		}
		windows = append(windows, w)
	}
}
