package models

import "encoding/json"

// Flight is a normalised flight record produced by the ingestion loader.
// Consumers treat it as read-only.
type Flight struct {
	ACID             string
	PlaneType        string
	Route            string
	Altitude         int
	DepartureAirport string
	ArrivalAirport   string
	// DepartureTime is epoch seconds; nil when the source did not carry one.
	DepartureTime *int64
	AircraftSpeed float64
	Passengers    int
	IsCargo       bool
}

// HasDeparture reports whether the flight can take part in departure
// congestion analysis. A time of exactly 0 counts as absent.
func (f Flight) HasDeparture() bool {
	return f.DepartureAirport != "" && f.DepartureTime != nil && *f.DepartureTime != 0
}

// DepartureUnix returns the departure time, or 0 when unset.
func (f Flight) DepartureUnix() int64 {
	if f.DepartureTime == nil {
		return 0
	}
	return *f.DepartureTime
}

// FlightDto is the dashboard's wire shape for a flight.
type FlightDto struct {
	ACID             string  `json:"ACID"`
	PlaneType        string  `json:"Plane type"`
	Route            string  `json:"route"`
	Altitude         int     `json:"altitude"`
	DepartureAirport string  `json:"departure airport"`
	ArrivalAirport   string  `json:"arrival airport"`
	DepartureTime    int64   `json:"departure time"`
	AircraftSpeed    float64 `json:"aircraft speed"`
	Passengers       int     `json:"passengers"`
	IsCargo          bool    `json:"is_cargo"`
}

// ToDto flattens the optional fields for clients that expect zero values.
func (f Flight) ToDto() FlightDto {
	return FlightDto{
		ACID:             f.ACID,
		PlaneType:        f.PlaneType,
		Route:            f.Route,
		Altitude:         f.Altitude,
		DepartureAirport: f.DepartureAirport,
		ArrivalAirport:   f.ArrivalAirport,
		DepartureTime:    f.DepartureUnix(),
		AircraftSpeed:    f.AircraftSpeed,
		Passengers:       f.Passengers,
		IsCargo:          f.IsCargo,
	}
}

func (f Flight) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.ToDto())
}

// UnmarshalJSON accepts the dto shape back. A zero departure time decodes as unset.
func (f *Flight) UnmarshalJSON(data []byte) error {
	var dto FlightDto
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	*f = Flight{
		ACID:             dto.ACID,
		PlaneType:        dto.PlaneType,
		Route:            dto.Route,
		Altitude:         dto.Altitude,
		DepartureAirport: dto.DepartureAirport,
		ArrivalAirport:   dto.ArrivalAirport,
		AircraftSpeed:    dto.AircraftSpeed,
		Passengers:       dto.Passengers,
		IsCargo:          dto.IsCargo,
	}
	if dto.DepartureTime != 0 {
		t := dto.DepartureTime
		f.DepartureTime = &t
	}
	return nil
}

// ToDtos converts a batch for the API.
func ToDtos(flights []Flight) []FlightDto {
	out := make([]FlightDto, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ToDto())
	}
	return out
}
