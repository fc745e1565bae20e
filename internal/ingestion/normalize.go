package ingestion

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"conflict-zero/tower/internal/models"
)

// Field aliases in lookup order. Source files come from several exporters
// that disagree on key names.
var (
	keysACID             = []string{"ACID", "acid", "flight_id"}
	keysPlaneType        = []string{"Plane type", "plane_type", "aircraft"}
	keysRoute            = []string{"route", "flight_path"}
	keysAltitude         = []string{"altitude", "alt", "level"}
	keysDepartureAirport = []string{"departure airport", "dep_airport", "origin"}
	keysArrivalAirport   = []string{"arrival airport", "arr_airport", "dest"}
	keysDepartureTime    = []string{"departure time", "dep_time", "timestamp"}
	keysSpeed            = []string{"aircraft speed", "speed", "ground_speed"}
	keysPassengers       = []string{"passengers", "pax"}
	keysCargo            = []string{"is_cargo", "cargo"}
)

const unknownValue = "Unknown"

// rawRecord is one decoded source object. Numbers are json.Number.
type rawRecord map[string]any

func (r rawRecord) lookup(keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r rawRecord) str(keys []string, def string) string {
	v, ok := r.lookup(keys)
	if !ok {
		return def
	}
	return toString(v)
}

func (r rawRecord) integer(keys []string) (int64, bool, error) {
	v, ok := r.lookup(keys)
	if !ok {
		return 0, false, nil
	}
	n, err := toInt(v)
	return n, true, err
}

// normalize converts a decoded object into a Flight. It returns (nil, nil)
// when the record has no usable identifier and an error when a present
// field cannot be coerced.
func normalize(item any) (*models.Flight, error) {
	rec, ok := item.(map[string]any)
	if !ok {
		return nil, nil
	}
	r := rawRecord(rec)

	acid, ok := r.lookup(keysACID)
	if !ok || !truthy(acid) {
		return nil, nil
	}

	f := &models.Flight{
		ACID:             toString(acid),
		PlaneType:        r.str(keysPlaneType, unknownValue),
		Route:            r.str(keysRoute, ""),
		DepartureAirport: r.str(keysDepartureAirport, ""),
		ArrivalAirport:   r.str(keysArrivalAirport, unknownValue),
	}

	alt, _, err := r.integer(keysAltitude)
	if err != nil {
		return nil, fmt.Errorf("altitude: %w", err)
	}
	f.Altitude = int(alt)

	dep, present, err := r.integer(keysDepartureTime)
	if err != nil {
		return nil, fmt.Errorf("departure time: %w", err)
	}
	if present {
		f.DepartureTime = &dep
	}

	if v, ok := r.lookup(keysSpeed); ok {
		speed, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("aircraft speed: %w", err)
		}
		f.AircraftSpeed = speed
	}

	pax, _, err := r.integer(keysPassengers)
	if err != nil {
		return nil, fmt.Errorf("passengers: %w", err)
	}
	f.Passengers = int(pax)

	if v, ok := r.lookup(keysCargo); ok {
		f.IsCargo = truthy(v)
	}

	return f, nil
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(t)
	}
}

func toInt(v any) (int64, error) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		fl, err := t.Float64()
		if err != nil {
			return 0, err
		}
		return truncate(fl)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", t)
		}
		return n, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", v)
	}
}

func truncate(fl float64) (int64, error) {
	if math.IsNaN(fl) || math.IsInf(fl, 0) || fl > math.MaxInt64 || fl < math.MinInt64 {
		return 0, fmt.Errorf("integer out of range: %v", fl)
	}
	return int64(fl), nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case json.Number:
		return t.Float64()
	case string:
		fl, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", t)
		}
		return fl, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	}
}

// truthy follows the loose truthiness the source exporters rely on: zero,
// empty strings and empty containers are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		fl, err := t.Float64()
		return err != nil || fl != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
