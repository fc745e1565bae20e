package services

import (
	"context"
	"time"

	"conflict-zero/tower/internal/congestion"
	"conflict-zero/tower/internal/metrics"
	"conflict-zero/tower/internal/models"

	"go.uber.org/zap"
)

// CongestionService runs airport departure congestion detection over a
// named flight file.
type CongestionService struct {
	flights *FlightsService
	workers int
	metrics *metrics.MetricsRegistry
	logger  *zap.SugaredLogger
}

func NewCongestionService(flights *FlightsService, workers int, metricsReg *metrics.MetricsRegistry, logger *zap.SugaredLogger) *CongestionService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CongestionService{
		flights: flights,
		workers: workers,
		metrics: metricsReg,
		logger:  logger,
	}
}

// AirportCongestion validates the window parameters, loads the file and
// returns its congestion events.
func (svc *CongestionService) AirportCongestion(ctx context.Context, file string, windowMinutes, threshold int) ([]models.CongestionEvent, error) {
	if err := congestion.ValidateParams(windowMinutes, threshold); err != nil {
		return nil, err
	}

	flights, err := svc.flights.GetFlights(ctx, file)
	if err != nil {
		return nil, err
	}

	detector := congestion.NewDetector(congestion.Options{
		WindowMinutes: windowMinutes,
		Threshold:     threshold,
		Workers:       svc.workers,
	})

	start := time.Now()
	events := detector.Detect(flights)
	elapsed := time.Since(start)

	if svc.metrics != nil {
		svc.metrics.DetectionDuration.Observe(elapsed.Seconds())
		for _, ev := range events {
			svc.metrics.CongestionEventsTotal.WithLabelValues(ev.Airport).Inc()
		}
	}

	svc.logger.Infow("Airport congestion detected",
		"file", file,
		"flights", len(flights),
		"events", len(events),
		"window_minutes", windowMinutes,
		"threshold", threshold,
		"duration_ms", elapsed.Milliseconds(),
	)
	return events, nil
}
