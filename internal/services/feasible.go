package services

import (
	"trip-planner-service/internal/domain"

	"github.com/rs/zerolog/log"
)

// FeasiblePaths returns the outgoing paths of current that can be taken next.
//
// A path is excluded when its destination was already visited, or when the
// transit plus visit would leave no strictly positive remainder of either
// budget or time. Insertion order of current.Paths is preserved.
func FeasiblePaths(
	current *domain.Place,
	budgetRemaining float64,
	timeRemaining float64,
	route *domain.Route,
	transitCostPerDay float64,
) []*domain.Path {
	out := make([]*domain.Path, 0, len(current.Paths))
	for _, p := range current.Paths {
		if route.Visited(p.Destination) {
			continue
		}

		cost := p.Time*transitCostPerDay + p.Destination.Cost
		if cost >= budgetRemaining {
			log.Debug().
				Str("from", current.Name).
				Str("to", p.Destination.Name).
				Float64("cost", cost).
				Float64("budget_remaining", budgetRemaining).
				Msg("path over budget")
			continue
		}

		// Transit and dwell time are lumped together.
		if p.Time+p.Destination.Time >= timeRemaining {
			log.Debug().
				Str("from", current.Name).
				Str("to", p.Destination.Name).
				Float64("days", p.Time+p.Destination.Time).
				Float64("time_remaining", timeRemaining).
				Msg("path over time")
			continue
		}

		out = append(out, p)
	}

	return out
}
