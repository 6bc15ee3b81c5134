package services

import (
	"fmt"
	"math"
	"trip-planner-service/internal/domain"
)

// Resource limits and the transit price used by a route search.
// TransitCostPerDay converts days spent in transit into money.
type SearchParams struct {
	Budget            float64
	TimeAvailable     float64
	TransitCostPerDay float64
}

type searcher struct {
	factor float64
	tracer Tracer
}

// Search finds the route from start with the highest accumulated utility that
// fits both the budget and the time available.
//
// The search is exhaustive: every feasible simple path is explored depth first,
// in the order paths were attached to each place. Terminal routes (no feasible
// continuation) are reduced with Better. The tracer, when non-nil, receives
// every partial route as it is recorded.
func Search(start *domain.Place, params SearchParams, tracer Tracer) (*domain.Route, error) {
	if err := validateSearch(start, params); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	s := &searcher{factor: params.TransitCostPerDay, tracer: tracer}
	route := domain.NewRoute(params.Budget, params.TimeAvailable)

	return s.explore(start, params.Budget, params.TimeAvailable, nil, route), nil
}

// explore records current into route (which must be owned by this call),
// recurses into every feasible continuation and returns the best route seen
// so far across the whole tree.
func (s *searcher) explore(
	current *domain.Place,
	budgetRemaining float64,
	timeRemaining float64,
	best *domain.Route,
	route *domain.Route,
) *domain.Route {
	route.Visit(current, budgetRemaining, timeRemaining)
	if s.tracer != nil {
		s.tracer.Record(route)
	}

	next := FeasiblePaths(current, budgetRemaining, timeRemaining, route, s.factor)
	if len(next) == 0 {
		return Better(route, best)
	}

	for _, p := range next {
		branch := route.Extend(p)
		finished := s.explore(
			p.Destination,
			budgetRemaining-p.Time*s.factor-p.Destination.Cost,
			timeRemaining-p.Time-p.Destination.Time,
			best,
			branch,
		)
		best = Better(finished, best)
	}

	return best
}

// validateSearch rejects inputs that would make the budget arithmetic
// meaningless or let an edge be traversed for free.
func validateSearch(start *domain.Place, params SearchParams) error {
	if start == nil {
		return &domain.ConfigurationError{Field: "start", Reason: "must be non-nil"}
	}

	checks := []struct {
		field string
		v     float64
	}{
		{"budget", params.Budget},
		{"time available", params.TimeAvailable},
		{"transit cost per day", params.TransitCostPerDay},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return &domain.ConfigurationError{Field: c.field, Reason: "must be a finite number"}
		}
	}
	if params.Budget < 0 {
		return &domain.ConfigurationError{
			Field:  "budget",
			Reason: fmt.Sprintf("must be non-negative, got %v", params.Budget),
		}
	}
	if params.TimeAvailable < 0 {
		return &domain.ConfigurationError{
			Field:  "time available",
			Reason: fmt.Sprintf("must be non-negative, got %v", params.TimeAvailable),
		}
	}
	if params.TransitCostPerDay < 0 {
		return &domain.ConfigurationError{
			Field:  "transit cost per day",
			Reason: fmt.Sprintf("must be non-negative, got %v", params.TransitCostPerDay),
		}
	}

	// Every reachable edge must consume money or time.
	seen := map[*domain.Place]struct{}{start: {}}
	queue := []*domain.Place{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, path := range p.Paths {
			dest := path.Destination
			money := path.Time*params.TransitCostPerDay + dest.Cost
			days := path.Time + dest.Time
			if money <= 0 && days <= 0 {
				return &domain.ConfigurationError{
					Field:  fmt.Sprintf("path %s", path),
					Reason: "consumes neither budget nor time",
				}
			}

			if _, ok := seen[dest]; !ok {
				seen[dest] = struct{}{}
				queue = append(queue, dest)
			}
		}
	}

	return nil
}
