package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// RedisTripCache stores computed trip plans as JSON strings.
// A zero TTL keeps entries until evicted.
type RedisTripCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisTripCache(client *redis.Client, ttl time.Duration) *RedisTripCache {
	return &RedisTripCache{Client: client, Prefix: "trip-planner:", TTL: ttl}
}

func (c *RedisTripCache) Get(
	ctx context.Context,
	key string,
) (_ *domain.TripPlan, _ bool, err error) {
	defer obs.Time(ctx, "trip.cache.redis.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("trip cache: redis client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get trip cache: key must not be empty")
	}

	payload, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get trip cache: redis get: %w", err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, false, fmt.Errorf("get trip cache: decode plan: %w", err)
	}

	return &plan, true, nil
}

func (c *RedisTripCache) Put(ctx context.Context, key string, plan *domain.TripPlan) error {
	if c.Client == nil {
		return errors.New("trip cache: redis client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert trip cache: key must not be empty")
	}

	if plan == nil {
		return errors.New("insert trip cache: plan must not be nil")
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert trip cache: encode plan: %w", err)
	}

	if err := c.Client.Set(ctx, c.Prefix+key, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert trip cache key=%q: %w", key, err)
	}

	return nil
}
