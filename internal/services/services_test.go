package services

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/congestion"
	"conflict-zero/tower/internal/ingestion"
	"conflict-zero/tower/internal/metrics"
	"conflict-zero/tower/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock FlightSource
type mockFlightSource struct {
	calls        atomic.Int32
	loadFileFunc func(ctx context.Context, path string) ([]models.Flight, error)
}

func (m *mockFlightSource) LoadFile(ctx context.Context, path string) ([]models.Flight, error) {
	m.calls.Add(1)
	return m.loadFileFunc(ctx, path)
}

const burstFile = `[
	{"ACID": "A1", "departure airport": "CYYZ", "departure time": 1700000000},
	{"ACID": "A2", "departure airport": "CYYZ", "departure time": 1700000060},
	{"ACID": "A3", "departure airport": "CYYZ", "departure time": 1700000120},
	{"ACID": "A4", "departure airport": "CYYZ", "departure time": 1700000180},
	{"ACID": "A5", "departure airport": "CYYZ", "departure time": 1700000700},
	{"ACID": "B1", "departure airport": "CYVR", "departure time": 1700000000},
	{"ACID": "B2", "departure airport": "CYVR", "departure time": 1700009000}
]`

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "burst.json"), []byte(burstFile), 0o644))
	return dir
}

func newRegistry() *metrics.MetricsRegistry {
	return metrics.NewMetricsRegistryWith(prometheus.NewRegistry())
}

func TestFlightsService_ResolvePath(t *testing.T) {
	svc := NewFlightsService(nil, nil, "/data", time.Minute, nil, nil)

	path, err := svc.ResolvePath("canadian_flights_250.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "canadian_flights_250.json"), path)

	for _, bad := range []string{"", ".", "..", "../etc/passwd", "sub/file.json", `a\b.json`, "x..json"} {
		_, err := svc.ResolvePath(bad)
		assert.ErrorIs(t, err, ErrInvalidFileName, bad)
	}
}

func TestFlightsService_CachesBatches(t *testing.T) {
	dir := setupDataDir(t)
	reg := newRegistry()
	source := &mockFlightSource{
		loadFileFunc: func(ctx context.Context, path string) ([]models.Flight, error) {
			return []models.Flight{{ACID: "X"}}, nil
		},
	}
	svc := NewFlightsService(source, common.NewCacheService(60, 120), dir, time.Minute, reg, nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		flights, err := svc.GetFlights(ctx, "burst.json")
		require.NoError(t, err)
		assert.Len(t, flights, 1)
	}

	assert.Equal(t, int32(1), source.calls.Load())
	assert.Equal(t, float64(2), testutil.ToFloat64(reg.CacheHitsTotal.WithLabelValues("flights")))
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.CacheMissesTotal.WithLabelValues("flights")))
}

func TestFlightsService_ReloadsRewrittenFile(t *testing.T) {
	dir := setupDataDir(t)
	loader := ingestion.NewLoader(nil, nil)
	svc := NewFlightsService(loader, common.NewCacheService(60, 120), dir, time.Minute, nil, nil)
	ctx := context.Background()

	flights, err := svc.GetFlights(ctx, "burst.json")
	require.NoError(t, err)
	assert.Len(t, flights, 7)

	path := filepath.Join(dir, "burst.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"ACID": "ONLY"}]`), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	flights, err = svc.GetFlights(ctx, "burst.json")
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "ONLY", flights[0].ACID)
}

func TestFlightsService_MissingFileIsDataUnavailable(t *testing.T) {
	svc := NewFlightsService(ingestion.NewLoader(nil, nil), common.NewCacheService(60, 120), t.TempDir(), time.Minute, nil, nil)

	_, err := svc.GetFlights(context.Background(), "absent.json")
	assert.ErrorIs(t, err, ingestion.ErrDataUnavailable)
	reason, _ := ingestion.ReasonOf(err)
	assert.Equal(t, ingestion.ReasonNotFound, reason)
}

func TestCongestionService_AirportCongestion(t *testing.T) {
	dir := setupDataDir(t)
	reg := newRegistry()
	flights := NewFlightsService(ingestion.NewLoader(nil, reg), common.NewCacheService(60, 120), dir, time.Minute, reg, nil)
	svc := NewCongestionService(flights, 2, reg, nil)

	events, err := svc.AirportCongestion(context.Background(), "burst.json", 10, 3)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CYYZ", events[0].Airport)
	assert.Equal(t, []string{"A1", "A2", "A3", "A4"}, events[0].FlightIDs)
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.CongestionEventsTotal.WithLabelValues("CYYZ")))

	events, err = svc.AirportCongestion(context.Background(), "burst.json", 10, 4)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCongestionService_RejectsInvalidParams(t *testing.T) {
	source := &mockFlightSource{
		loadFileFunc: func(ctx context.Context, path string) ([]models.Flight, error) {
			t.Fatal("loader must not run for invalid parameters")
			return nil, nil
		},
	}
	svc := NewCongestionService(NewFlightsService(source, nil, t.TempDir(), time.Minute, nil, nil), 1, nil, nil)

	_, err := svc.AirportCongestion(context.Background(), "burst.json", 0, 3)
	assert.ErrorIs(t, err, congestion.ErrInvalidWindow)

	_, err = svc.AirportCongestion(context.Background(), "burst.json", 10, 0)
	assert.ErrorIs(t, err, congestion.ErrInvalidThreshold)
	assert.Equal(t, int32(0), source.calls.Load())
}
