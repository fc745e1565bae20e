package api

import (
	"context"
	"fmt"
	"time"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/config"
	"conflict-zero/tower/internal/ingestion"
	"conflict-zero/tower/internal/metrics"
	"conflict-zero/tower/internal/services"

	"go.uber.org/zap"
)

type Services struct {
	Cache      common.FlightCache
	Loader     *ingestion.Loader
	Flights    *services.FlightsService
	Congestion *services.CongestionService
}

type Dependencies struct {
	Config   config.Config
	Metrics  *metrics.MetricsRegistry
	Services *Services
}

// InitDependencies builds the cache, loader and services described by cfg.
func InitDependencies(ctx context.Context, cfg config.Config, metricsReg *metrics.MetricsRegistry, logger *zap.SugaredLogger) (*Dependencies, error) {
	cache, err := newFlightCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	loader := ingestion.NewLoader(logger.Named("ingestion"), metricsReg)
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	flightSvc := services.NewFlightsService(loader, cache, cfg.DataDirectory, ttl, metricsReg, logger.Named("flights"))
	congestionSvc := services.NewCongestionService(flightSvc, cfg.Congestion.Workers, metricsReg, logger.Named("congestion"))

	return &Dependencies{
		Config:  cfg,
		Metrics: metricsReg,
		Services: &Services{
			Cache:      cache,
			Loader:     loader,
			Flights:    flightSvc,
			Congestion: congestionSvc,
		},
	}, nil
}

func newFlightCache(ctx context.Context, cfg config.CacheConfig, logger *zap.SugaredLogger) (common.FlightCache, error) {
	switch cfg.Backend {
	case "redis":
		cache, err := common.NewRedisCacheService(ctx, common.RedisOptions{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		}, logger.Named("redis"))
		if err != nil {
			return nil, err
		}
		return cache, nil
	case "memory", "":
		return common.NewCacheService(cfg.TTLSeconds, cfg.TTLSeconds*2), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Close releases resources held by the dependencies.
func (d *Dependencies) Close() error {
	return d.Services.Cache.Close()
}
