package congestion

import (
	"fmt"
	"testing"

	"conflict-zero/tower/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flight(id, airport string, dep int64) models.Flight {
	f := models.Flight{ACID: id, DepartureAirport: airport}
	if dep != 0 {
		f.DepartureTime = &dep
	}
	return f
}

func burst(airport string, times ...int64) []models.Flight {
	out := make([]models.Flight, 0, len(times))
	for i, t := range times {
		out = append(out, flight(fmt.Sprintf("%s%03d", airport, i), airport, t))
	}
	return out
}

func TestDetect_SingleBurstThenSparse(t *testing.T) {
	const base = 1_700_000_000
	flights := burst("CYYZ", base, base+60, base+120, base+180, base+700)

	events := DetectCongestion(flights, 10, 3)

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "CYYZ", ev.Airport)
	assert.Equal(t, 4, ev.FlightCount)
	assert.Equal(t, []string{"CYYZ000", "CYYZ001", "CYYZ002", "CYYZ003"}, ev.FlightIDs)
	assert.Equal(t, "2023-11-14 22:13", ev.WindowStart)
	assert.Equal(t, "2023-11-14 22:23", ev.WindowEnd)
	assert.Equal(t, "Shift low-priority flights by 5–10 minutes", ev.Recommendation)
}

func TestDetect_ThresholdEqualsCountIsNotReported(t *testing.T) {
	flights := burst("CYYZ", 1000, 1060, 1120, 1180, 1700)
	assert.Empty(t, DetectCongestion(flights, 10, 4))
}

func TestDetect_ThresholdBoundary(t *testing.T) {
	exact := burst("CYVR", 100, 200, 300)
	assert.Empty(t, DetectCongestion(exact, 10, 3))

	oneMore := burst("CYVR", 100, 200, 300, 400)
	events := DetectCongestion(oneMore, 10, 3)
	require.Len(t, events, 1)
	assert.Equal(t, 4, events[0].FlightCount)
}

func TestDetect_AirportIsolation(t *testing.T) {
	flights := append(burst("CYYZ", 100, 160, 220, 280), burst("CYUL", 100, 5000)...)

	events := DetectCongestion(flights, 10, 3)

	require.Len(t, events, 1)
	assert.Equal(t, "CYYZ", events[0].Airport)
	for _, id := range events[0].FlightIDs {
		assert.Contains(t, id, "CYYZ")
	}

	// Adding traffic elsewhere does not change CYYZ's result.
	busy := append(flights, burst("CYUL", 300, 310, 320, 330, 340, 350)...)
	var cyyz []models.CongestionEvent
	for _, ev := range DetectCongestion(busy, 10, 3) {
		if ev.Airport == "CYYZ" {
			cyyz = append(cyyz, ev)
		}
	}
	assert.Equal(t, events, cyyz)
}

func TestDetect_ExclusionFilter(t *testing.T) {
	flights := burst("CYYZ", 100, 160, 220)
	flights = append(flights,
		flight("NOAIRPORT", "", 200),
		flight("NOTIME", "CYYZ", 0),
	)

	assert.Empty(t, DetectCongestion(flights, 10, 3))

	groups := GroupByAirport(flights)
	assert.Equal(t, []string{"CYYZ"}, groups.Order)
	assert.Len(t, groups.Flights["CYYZ"], 3)
	_, hasEmpty := groups.Flights[""]
	assert.False(t, hasEmpty)
}

func TestDetect_ExplicitZeroTimeIsExcluded(t *testing.T) {
	zero := int64(0)
	flights := burst("CYYZ", 100, 160, 220)
	flights = append(flights, models.Flight{ACID: "ZERO", DepartureAirport: "CYYZ", DepartureTime: &zero})

	assert.Empty(t, DetectCongestion(flights, 10, 3))
}

func TestDetect_EmptyInput(t *testing.T) {
	events := DetectCongestion(nil, 10, 3)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestDetect_UnsortedInputIsOrderedByTime(t *testing.T) {
	flights := []models.Flight{
		flight("D", "CYYC", 400),
		flight("B", "CYYC", 200),
		flight("A", "CYYC", 100),
		flight("C", "CYYC", 300),
	}

	events := DetectCongestion(flights, 10, 3)

	require.Len(t, events, 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, events[0].FlightIDs)
}

func TestDetect_EqualTimesKeepInputOrder(t *testing.T) {
	flights := []models.Flight{
		flight("X2", "CYOW", 500),
		flight("X1", "CYOW", 500),
		flight("X3", "CYOW", 500),
		flight("X0", "CYOW", 400),
	}

	events := DetectCongestion(flights, 10, 3)

	require.Len(t, events, 1)
	assert.Equal(t, []string{"X0", "X2", "X1", "X3"}, events[0].FlightIDs)
}

func TestDetect_WindowIsHalfOpen(t *testing.T) {
	// The flight at exactly anchor+600 falls outside the first window.
	flights := burst("CYWG", 1000, 1100, 1200, 1600)
	assert.Empty(t, DetectCongestion(flights, 10, 3))

	flights = burst("CYWG", 1000, 1100, 1200, 1599)
	require.Len(t, DetectCongestion(flights, 10, 3), 1)
}

func TestDetect_WindowSpanningWholeSequence(t *testing.T) {
	flights := burst("CYHZ", 100, 110, 120, 130, 140, 150)
	events := DetectCongestion(flights, 10, 3)
	require.Len(t, events, 1)
	assert.Equal(t, 6, events[0].FlightCount)
}

func TestDetect_SkipAheadYieldsDisjointEvents(t *testing.T) {
	var times []int64
	for i := int64(0); i < 40; i++ {
		times = append(times, 10_000+i*90)
	}
	flights := burst("CYYZ", times...)

	events := DetectCongestion(flights, 10, 3)
	require.NotEmpty(t, events)

	seen := make(map[string]bool)
	for _, ev := range events {
		for _, id := range ev.FlightIDs {
			assert.False(t, seen[id], "flight %s reported twice", id)
			seen[id] = true
		}
	}
}

func TestDetect_WindowArithmetic(t *testing.T) {
	for _, minutes := range []int{1, 7, 10, 60} {
		flights := burst("CYYZ", 5000, 5001, 5002, 5003, 5004)
		events := DetectCongestion(flights, minutes, 3)
		require.Len(t, events, 1)
		ev := events[0]
		assert.Equal(t, int64(5000), ev.StartUnix)
		assert.Equal(t, ev.StartUnix+int64(minutes)*60, ev.EndUnix)
	}
}

func TestDetect_FlightIDsAreTimeOrdered(t *testing.T) {
	times := map[string]int64{}
	var flights []models.Flight
	for i, ts := range []int64{900, 300, 600, 100, 800, 200, 700, 500, 400} {
		id := fmt.Sprintf("F%d", i)
		times[id] = ts
		flights = append(flights, flight(id, "CYUL", ts))
	}

	for _, ev := range DetectCongestion(flights, 5, 2) {
		for k := 1; k < len(ev.FlightIDs); k++ {
			assert.LessOrEqual(t, times[ev.FlightIDs[k-1]], times[ev.FlightIDs[k]])
		}
	}
}

func TestDetect_ConcurrentMatchesSequential(t *testing.T) {
	var flights []models.Flight
	for _, ap := range []string{"CYYZ", "CYVR", "CYUL", "CYYC", "CYOW", "CYWG"} {
		for i := int64(0); i < 25; i++ {
			flights = append(flights, flight(fmt.Sprintf("%s-%d", ap, i), ap, 3600+i*100))
		}
	}

	seq := NewDetector(Options{WindowMinutes: 10, Threshold: 3}).Detect(flights)
	par := NewDetector(Options{WindowMinutes: 10, Threshold: 3, Workers: 4}).Detect(flights)

	assert.Equal(t, seq, par)
}

func TestDetect_ThresholdZeroReportsEveryFlight(t *testing.T) {
	flights := burst("CYYZ", 100, 5000, 9000)
	events := DetectCongestion(flights, 10, 0)
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, 1, ev.FlightCount)
	}
}

func TestDetect_NonPositiveWindowTerminates(t *testing.T) {
	flights := burst("CYYZ", 100, 100, 100)
	assert.Empty(t, DetectCongestion(flights, 0, -1))
	assert.Empty(t, DetectCongestion(flights, -5, 0))
}

func TestDetect_DoesNotMutateInput(t *testing.T) {
	flights := []models.Flight{
		flight("B", "CYYZ", 200),
		flight("A", "CYYZ", 100),
	}
	DetectCongestion(flights, 10, 0)
	assert.Equal(t, "B", flights[0].ACID)
	assert.Equal(t, "A", flights[1].ACID)
}

func TestWindowCursor_CoveredNeverRegresses(t *testing.T) {
	var times []int64
	for i := int64(0); i < 60; i++ {
		times = append(times, 100+i*37)
	}
	cursor := newWindowCursor(burst("CYYZ", times...), 3, 2)

	last := 0
	for {
		w, ok := cursor.Next()
		if !ok {
			break
		}
		assert.GreaterOrEqual(t, w.Start, last, "window starts inside an already reported range")
		assert.Equal(t, w.End, cursor.Covered())
		assert.Equal(t, w.Count(), len(w.Flights))
		last = cursor.Covered()
	}
	assert.Greater(t, last, 0)
}

func TestScan_EmptyAirport(t *testing.T) {
	assert.Empty(t, Scan(nil, 10, 3))
}

func TestReport_Format(t *testing.T) {
	w := Window{
		Start:      0,
		End:        2,
		AnchorUnix: 1_700_000_000,
		Flights:    burst("CYYZ", 1_700_000_000, 1_700_000_030),
	}

	ev := Report("CYYZ", w, 15)

	assert.Equal(t, "2023-11-14 22:13", ev.WindowStart)
	assert.Equal(t, "2023-11-14 22:28", ev.WindowEnd)
	assert.Equal(t, 2, ev.FlightCount)
	assert.Equal(t, "Shift low-priority flights by 7–15 minutes", ev.Recommendation)
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		window, threshold int
		want              error
	}{
		{10, 3, nil},
		{1, 1, nil},
		{60, 100, nil},
		{0, 3, ErrInvalidWindow},
		{61, 3, ErrInvalidWindow},
		{10, 0, ErrInvalidThreshold},
	}
	for _, tc := range tests {
		err := ValidateParams(tc.window, tc.threshold)
		if tc.want == nil {
			assert.NoError(t, err, "window=%d threshold=%d", tc.window, tc.threshold)
			continue
		}
		assert.ErrorIs(t, err, tc.want, "window=%d threshold=%d", tc.window, tc.threshold)
	}
}
