package common

import (
	"context"
	"time"

	"conflict-zero/tower/internal/models"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory FlightCache backed by go-cache.
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements FlightCache
var _ FlightCache = (*CacheService)(nil)

func NewCacheService(defaultExpirationSeconds, cleanUpIntervalSeconds int) *CacheService {

	defaultExpiration := time.Duration(defaultExpirationSeconds) * time.Second
	cleanUpInterval := time.Duration(cleanUpIntervalSeconds) * time.Second
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(_ context.Context, key string, flights []models.Flight, duration time.Duration) {
	cs.cache.Set(key, flights, duration)
}

func (cs *CacheService) Get(_ context.Context, key string) ([]models.Flight, bool) {
	val, found := cs.cache.Get(key)
	if !found {
		return nil, false
	}
	flights, ok := val.([]models.Flight)
	return flights, ok
}

func (cs *CacheService) Delete(_ context.Context, key string) {
	cs.cache.Delete(key)
}

func (cs *CacheService) Ping(context.Context) error {
	return nil
}

func (cs *CacheService) Name() string {
	return "memory"
}

// Count returns the number of cached batches, including expired ones not yet cleaned up.
func (cs *CacheService) Count() int {
	return cs.cache.ItemCount()
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
