package common

import (
	"context"
	"testing"
	"time"

	"conflict-zero/tower/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch() []models.Flight {
	dep := int64(1700000000)
	return []models.Flight{
		{ACID: "ACA1", DepartureAirport: "CYYZ", DepartureTime: &dep},
		{ACID: "WJA2"},
	}
}

func TestCacheService_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(60, 120)

	_, found := cs.Get(ctx, "flights:a.json")
	assert.False(t, found)

	cs.Set(ctx, "flights:a.json", sampleBatch(), time.Minute)
	got, found := cs.Get(ctx, "flights:a.json")
	require.True(t, found)
	assert.Equal(t, sampleBatch(), got)
	assert.Equal(t, 1, cs.Count())

	cs.Delete(ctx, "flights:a.json")
	_, found = cs.Get(ctx, "flights:a.json")
	assert.False(t, found)

	assert.NoError(t, cs.Ping(ctx))
	assert.Equal(t, "memory", cs.Name())
	assert.NoError(t, cs.Close())
}

func TestCacheService_Expiry(t *testing.T) {
	ctx := context.Background()
	cs := NewCacheService(60, 120)

	cs.Set(ctx, "k", sampleBatch(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := cs.Get(ctx, "k")
	assert.False(t, found)
}

func TestRedisCacheService_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCacheService(ctx, RedisOptions{Host: "127.0.0.1", Port: "1"}, nil)
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestRedisCacheService_GetMissesOnError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	svc := NewRedisCacheServiceFromClient(client, nil)
	defer svc.Close()

	ctx := context.Background()
	svc.Set(ctx, "k", sampleBatch(), time.Minute)
	_, found := svc.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, "redis", svc.Name())
}
