package congestion

import (
	"conflict-zero/tower/internal/models"

	"golang.org/x/sync/errgroup"
)

// Options configures a Detector.
type Options struct {
	WindowMinutes int
	Threshold     int
	// Workers bounds how many airports are scanned at once. Values below 2
	// scan sequentially.
	Workers int
}

// DefaultOptions returns the detector defaults used by the API.
func DefaultOptions() Options {
	return Options{
		WindowMinutes: DefaultWindowMinutes,
		Threshold:     DefaultThreshold,
		Workers:       1,
	}
}

// Detector flags airport departure congestion over an in-memory batch.
type Detector struct {
	opts Options
}

func NewDetector(opts Options) *Detector {
	return &Detector{opts: opts}
}

// Options returns the detector's configuration.
func (d *Detector) Options() Options {
	return d.opts
}

// Detect groups flights by airport, scans each airport and returns the
// resulting events. Events for one airport are in time order; airports
// appear in the order they were first seen in flights.
func (d *Detector) Detect(flights []models.Flight) []models.CongestionEvent {
	groups := GroupByAirport(flights)
	perAirport := make([][]models.CongestionEvent, groups.Len())

	scan := func(idx int) {
		airport := groups.Order[idx]
		for _, w := range Scan(groups.Flights[airport], d.opts.WindowMinutes, d.opts.Threshold) {
			perAirport[idx] = append(perAirport[idx], Report(airport, w, d.opts.WindowMinutes))
		}
	}

	if d.opts.Workers < 2 {
		for idx := range groups.Order {
			scan(idx)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(d.opts.Workers)
		for idx := range groups.Order {
			idx := idx
			g.Go(func() error {
				scan(idx)
				return nil
			})
		}
		_ = g.Wait()
	}

	events := make([]models.CongestionEvent, 0)
	for _, evs := range perAirport {
		events = append(events, evs...)
	}
	return events
}

// DetectCongestion runs a sequential detector with the given window and threshold.
func DetectCongestion(flights []models.Flight, windowMinutes, threshold int) []models.CongestionEvent {
	return NewDetector(Options{WindowMinutes: windowMinutes, Threshold: threshold}).Detect(flights)
}
