package cache

import (
	"context"
	"testing"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisTripCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisTripCache(client, ttl), mr
}

func samplePlan() *domain.TripPlan {
	return &domain.TripPlan{
		ProblemID: "sample",
		Start:     "Paris",
		Stops: []domain.TripStop{
			{Place: "Paris", Utility: 4, Cost: 300, Time: 2},
			{Place: "Atlantis", Utility: 8, Cost: 150, Time: 2},
		},
		Legs: []domain.TripLeg{
			{From: "Paris", To: "Atlantis", Time: 1, Utility: 3},
		},
		Utility:         15,
		BudgetRemaining: 450,
		TimeRemaining:   11,
	}
}

func TestRedisTripCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedisCache(t, 0)

	_, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Put(ctx, "k1", samplePlan()))

	got, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, samplePlan(), got)
}

func TestRedisTripCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t, time.Minute)

	require.NoError(t, c.Put(ctx, "k1", samplePlan()))
	assert.True(t, mr.Exists("trip-planner:k1"))

	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisTripCacheRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestRedisCache(t, 0)

	assert.Error(t, c.Put(ctx, "", samplePlan()))
	assert.Error(t, c.Put(ctx, "k", nil))
	_, _, err := c.Get(ctx, " ")
	assert.Error(t, err)
}
