package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"conflict-zero/tower/internal/common"
	"conflict-zero/tower/internal/constants"
	"conflict-zero/tower/internal/metrics"
	"conflict-zero/tower/internal/models"

	"go.uber.org/zap"
)

var ErrInvalidFileName = errors.New("invalid flight file name")

// FlightSource loads the flights held in one file.
type FlightSource interface {
	LoadFile(ctx context.Context, path string) ([]models.Flight, error)
}

// FlightsService resolves flight files inside the data directory and keeps
// parsed batches in a cache.
type FlightsService struct {
	source  FlightSource
	cache   common.FlightCache
	dataDir string
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
	logger  *zap.SugaredLogger
}

func NewFlightsService(source FlightSource, cache common.FlightCache, dataDir string, ttl time.Duration,
	metricsReg *metrics.MetricsRegistry, logger *zap.SugaredLogger) *FlightsService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FlightsService{
		source:  source,
		cache:   cache,
		dataDir: dataDir,
		ttl:     ttl,
		metrics: metricsReg,
		logger:  logger,
	}
}

// ResolvePath maps a bare file name to a path inside the data directory.
func (svc *FlightsService) ResolvePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return filepath.Join(svc.dataDir, name), nil
}

// GetFlights returns the flights in the named file. The returned slice may
// be shared with other callers and must not be modified.
func (svc *FlightsService) GetFlights(ctx context.Context, name string) ([]models.Flight, error) {
	path, err := svc.ResolvePath(name)
	if err != nil {
		return nil, err
	}

	key, cacheable := svc.cacheKey(name, path)
	if cacheable && svc.cache != nil {
		if flights, found := svc.cache.Get(ctx, key); found {
			svc.observeCache(true)
			return flights, nil
		}
		svc.observeCache(false)
	}

	flights, err := svc.source.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if cacheable && svc.cache != nil {
		svc.cache.Set(ctx, key, flights, svc.ttl)
	}
	svc.logger.Debugw("Flight batch loaded", "file", name, "count", len(flights), "cached", cacheable)
	return flights, nil
}

// cacheKey ties the cache entry to the file's size and modification time so
// a rewritten file is reloaded.
func (svc *FlightsService) cacheKey(name, path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return fmt.Sprintf("%s:%s:%d:%d", constants.CacheKeyFlights, name, info.ModTime().UnixNano(), info.Size()), true
}

func (svc *FlightsService) observeCache(hit bool) {
	if svc.metrics == nil {
		return
	}
	if hit {
		svc.metrics.CacheHitsTotal.WithLabelValues(constants.CacheKeyFlights).Inc()
	} else {
		svc.metrics.CacheMissesTotal.WithLabelValues(constants.CacheKeyFlights).Inc()
	}
}

// Cache exposes the backing cache for health reporting.
func (svc *FlightsService) Cache() common.FlightCache {
	return svc.cache
}
