package cache

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
	"trip-planner-service/internal/domain"
)

type memoryEntry struct {
	plan      domain.TripPlan
	expiresAt time.Time
}

// MemoryTripCache keeps plans in process memory. Safe for concurrent use.
// A zero TTL keeps entries until the process exits. Expired entries are
// dropped lazily on Get.
type MemoryTripCache struct {
	TTL time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryTripCache(ttl time.Duration) *MemoryTripCache {
	return &MemoryTripCache{TTL: ttl, entries: map[string]memoryEntry{}, now: time.Now}
}

func (c *MemoryTripCache) Get(ctx context.Context, key string) (*domain.TripPlan, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	return clonePlan(&e.plan), true, nil
}

func (c *MemoryTripCache) Put(ctx context.Context, key string, plan *domain.TripPlan) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("insert trip cache: key must not be empty")
	}
	if plan == nil {
		return errors.New("insert trip cache: plan must not be nil")
	}

	e := memoryEntry{plan: *clonePlan(plan)}
	if c.TTL > 0 {
		e.expiresAt = c.now().Add(c.TTL)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()

	return nil
}

func (c *MemoryTripCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// clonePlan copies the plan including its stop and leg slices.
func clonePlan(p *domain.TripPlan) *domain.TripPlan {
	out := *p
	out.Stops = slices.Clone(p.Stops)
	out.Legs = slices.Clone(p.Legs)
	return &out
}
