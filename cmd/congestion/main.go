package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"conflict-zero/tower/internal/congestion"
	"conflict-zero/tower/internal/ingestion"
	"conflict-zero/tower/internal/logging"
	"conflict-zero/tower/internal/models"
)

const maxListedFlights = 5

func main() {
	window := flag.Int("window", congestion.DefaultWindowMinutes, "window size in minutes")
	threshold := flag.Int("threshold", congestion.DefaultThreshold, "flights allowed per window before flagging")
	workers := flag.Int("workers", 1, "airports scanned concurrently")
	env := flag.String("env", "development", "logging environment")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"canadian_flights_1000.json"}
	}

	logger, err := logging.New(*env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := congestion.ValidateParams(*window, *threshold); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	flights, err := ingestion.NewLoader(logger, nil).Load(context.Background(), files...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	detector := congestion.NewDetector(congestion.Options{
		WindowMinutes: *window,
		Threshold:     *threshold,
		Workers:       *workers,
	})
	printReport(os.Stdout, len(flights), detector.Detect(flights))
}

func printReport(w io.Writer, loaded int, events []models.CongestionEvent) {
	fmt.Fprintf(w, "Loaded %d flights.\n", loaded)
	fmt.Fprintln(w, "\n--- Analyzing Airport Congestion ---")

	if len(events) == 0 {
		fmt.Fprintln(w, "No congestion events detected.")
		return
	}

	fmt.Fprintf(w, "Found %d congestion events:\n", len(events))
	for _, ev := range events {
		fmt.Fprintf(w, "\n[!] Congestion at %s (%s - %s)\n", ev.Airport, ev.WindowStart, ev.WindowEnd)
		fmt.Fprintf(w, "    Count: %d flights\n", ev.FlightCount)

		listed := ev.FlightIDs
		suffix := ""
		if len(listed) > maxListedFlights {
			listed = listed[:maxListedFlights]
			suffix = "..."
		}
		fmt.Fprintf(w, "    Flights: %s%s\n", strings.Join(listed, ", "), suffix)
		fmt.Fprintf(w, "    Action: %s\n", ev.Recommendation)
	}
}
