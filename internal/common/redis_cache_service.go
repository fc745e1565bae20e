package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"conflict-zero/tower/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions configures the Redis-backed FlightCache.
type RedisOptions struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisCacheService implements FlightCache using Redis. Batches are stored
// as JSON in the dashboard wire shape.
type RedisCacheService struct {
	client *redis.Client
	logger *zap.SugaredLogger
}

// Ensure RedisCacheService implements FlightCache
var _ FlightCache = (*RedisCacheService)(nil)

// NewRedisCacheService connects to Redis and verifies the connection.
func NewRedisCacheService(ctx context.Context, opts RedisOptions, logger *zap.SugaredLogger) (*RedisCacheService, error) {
	if opts.Host == "" {
		opts.Host = "localhost"
	}
	if opts.Port == "" {
		opts.Port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	svc := NewRedisCacheServiceFromClient(client, logger)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := svc.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return svc, nil
}

// NewRedisCacheServiceFromClient wraps an existing client.
func NewRedisCacheServiceFromClient(client *redis.Client, logger *zap.SugaredLogger) *RedisCacheService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RedisCacheService{client: client, logger: logger}
}

// Set stores a batch in Redis with the given key and duration
func (r *RedisCacheService) Set(ctx context.Context, key string, flights []models.Flight, duration time.Duration) {
	data, err := json.Marshal(flights)
	if err != nil {
		r.logger.Warnw("Redis cache: failed to marshal batch", "key", key, "error", err.Error())
		return
	}

	if err := r.client.Set(ctx, key, data, duration).Err(); err != nil {
		r.logger.Warnw("Redis cache: failed to set key", "key", key, "error", err.Error())
	}
}

// Get retrieves a batch from Redis by key
func (r *RedisCacheService) Get(ctx context.Context, key string) ([]models.Flight, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		r.logger.Warnw("Redis cache: failed to get key", "key", key, "error", err.Error())
		return nil, false
	}

	var flights []models.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		r.logger.Warnw("Redis cache: failed to unmarshal batch", "key", key, "error", err.Error())
		return nil, false
	}
	return flights, true
}

// Delete removes a batch from Redis by key
func (r *RedisCacheService) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warnw("Redis cache: failed to delete key", "key", key, "error", err.Error())
	}
}

func (r *RedisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCacheService) Name() string {
	return "redis"
}

// Close closes the Redis connection
func (r *RedisCacheService) Close() error {
	return r.client.Close()
}
