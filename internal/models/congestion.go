package models

// CongestionEvent reports more than a threshold number of departures from
// one airport inside a single time window.
type CongestionEvent struct {
	Airport        string   `json:"airport"`
	WindowStart    string   `json:"start_time"`
	WindowEnd      string   `json:"end_time"`
	StartUnix      int64    `json:"start_unix"`
	EndUnix        int64    `json:"end_unix"`
	FlightCount    int      `json:"flight_count"`
	FlightIDs      []string `json:"flights"`
	Recommendation string   `json:"recommendation"`
}
