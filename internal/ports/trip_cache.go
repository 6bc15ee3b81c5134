package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for caching computed trip plans by a content-derived key.
type TripCache interface {
	// Return the cached plan and true on a hit.
	Get(ctx context.Context, key string) (*domain.TripPlan, bool, error)
	Put(ctx context.Context, key string, plan *domain.TripPlan) error
}
