package common

import (
	"context"
	"time"

	"conflict-zero/tower/internal/models"
)

// FlightCache stores loaded flight batches keyed by source. Cached batches
// are shared between requests and must be treated as read-only.
type FlightCache interface {
	// Set stores a batch under key for duration
	Set(ctx context.Context, key string, flights []models.Flight, duration time.Duration)

	// Get returns the batch stored under key and whether it was found
	Get(ctx context.Context, key string) ([]models.Flight, bool)

	// Delete removes a batch
	Delete(ctx context.Context, key string)

	// Ping reports whether the backend is reachable
	Ping(ctx context.Context) error

	// Name identifies the backend in health output
	Name() string

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
