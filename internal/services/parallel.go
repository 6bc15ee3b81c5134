package services

import (
	"context"
	"fmt"
	"trip-planner-service/internal/domain"

	"github.com/sourcegraph/conc/pool"
)

// MaxWorkers bounds the goroutines a single search may use.
const MaxWorkers = 32

// SearchParallel is Search with the subtrees below the start place explored
// concurrently by at most workers goroutines.
//
// Each subtree is searched sequentially from an empty accumulator and the
// results are merged with Better in exploration order, which yields the same
// route as Search. The tracer must be safe for concurrent use; recording
// order across subtrees is not deterministic.
func SearchParallel(
	ctx context.Context,
	start *domain.Place,
	params SearchParams,
	tracer Tracer,
	workers int,
) (*domain.Route, error) {
	if err := validateSearch(start, params); err != nil {
		return nil, fmt.Errorf("search parallel: %w", err)
	}
	workers = min(max(workers, 1), MaxWorkers)

	s := &searcher{factor: params.TransitCostPerDay, tracer: tracer}

	root := domain.NewRoute(params.Budget, params.TimeAvailable)
	root.Visit(start, params.Budget, params.TimeAvailable)
	if tracer != nil {
		tracer.Record(root)
	}

	next := FeasiblePaths(start, params.Budget, params.TimeAvailable, root, s.factor)
	if len(next) == 0 {
		return root, nil
	}

	results := make([]*domain.Route, len(next))
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for i, path := range next {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.explore(
				path.Destination,
				params.Budget-path.Time*s.factor-path.Destination.Cost,
				params.TimeAvailable-path.Time-path.Destination.Time,
				nil,
				root.Extend(path),
			)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("search parallel: %w", err)
	}

	var best *domain.Route
	for _, r := range results {
		best = Better(r, best)
	}

	return best, nil
}
