package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTripCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTripCache(0)

	_, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)

	plan := samplePlan()
	require.NoError(t, c.Put(ctx, "k1", plan))
	plan.Utility = 0
	plan.Stops[0].Place = "Lyon"

	got, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, samplePlan(), got, "stored plan must not alias the caller's")
	assert.Equal(t, 1, c.Len())
}

func TestMemoryTripCacheReturnsIndependentCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTripCache(0)
	require.NoError(t, c.Put(ctx, "k1", samplePlan()))

	first, _, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	first.Stops[0].Place = "Lyon"
	first.Legs[0].To = "Lyon"

	second, _, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "Paris", second.Stops[0].Place)
	assert.Equal(t, "Atlantis", second.Legs[0].To)
}

func TestMemoryTripCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTripCache(time.Minute)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put(ctx, "k1", samplePlan()))

	now = now.Add(59 * time.Second)
	_, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, hit)

	now = now.Add(time.Second)
	_, hit, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryTripCacheRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryTripCache(0)

	assert.Error(t, c.Put(ctx, "k", nil))
	assert.Error(t, c.Put(ctx, " ", samplePlan()))
	assert.Equal(t, 0, c.Len())
}
