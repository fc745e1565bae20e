package main

import (
	"bytes"
	"testing"

	"conflict-zero/tower/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPrintReport_NoEvents(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, 12, nil)

	assert.Equal(t, "Loaded 12 flights.\n\n--- Analyzing Airport Congestion ---\nNo congestion events detected.\n", buf.String())
}

func TestPrintReport_TruncatesFlightList(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, 7, []models.CongestionEvent{{
		Airport:        "CYYZ",
		WindowStart:    "2023-11-14 22:13",
		WindowEnd:      "2023-11-14 22:23",
		FlightCount:    6,
		FlightIDs:      []string{"A", "B", "C", "D", "E", "F"},
		Recommendation: "Shift low-priority flights by 5–10 minutes",
	}})

	out := buf.String()
	assert.Contains(t, out, "Found 1 congestion events:")
	assert.Contains(t, out, "[!] Congestion at CYYZ (2023-11-14 22:13 - 2023-11-14 22:23)")
	assert.Contains(t, out, "    Count: 6 flights")
	assert.Contains(t, out, "    Flights: A, B, C, D, E...")
	assert.Contains(t, out, "    Action: Shift low-priority flights by 5–10 minutes")
}
