package congestion

import "conflict-zero/tower/internal/models"

// AirportGroups holds departures bucketed by airport. Order keeps the
// airports in the order they were first seen.
type AirportGroups struct {
	Order   []string
	Flights map[string][]models.Flight
}

// Len returns the number of airports with at least one eligible departure.
func (g *AirportGroups) Len() int {
	return len(g.Order)
}

// GroupByAirport partitions flights by departure airport. Flights without an
// airport or departure time are dropped.
func GroupByAirport(flights []models.Flight) *AirportGroups {
	groups := &AirportGroups{Flights: make(map[string][]models.Flight)}
	for _, f := range flights {
		if !f.HasDeparture() {
			continue
		}
		if _, seen := groups.Flights[f.DepartureAirport]; !seen {
			groups.Order = append(groups.Order, f.DepartureAirport)
		}
		groups.Flights[f.DepartureAirport] = append(groups.Flights[f.DepartureAirport], f)
	}
	return groups
}
