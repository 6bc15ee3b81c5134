package services

import "trip-planner-service/internal/domain"

// Better returns the preferred of two routes.
//
// Higher utility wins. On equal utility the route with strictly more budget
// remaining wins. When both are equal the incumbent is kept, so the route
// found first survives. A nil route always loses.
func Better(candidate, incumbent *domain.Route) *domain.Route {
	if incumbent == nil {
		return candidate
	}
	if candidate == nil {
		return incumbent
	}

	if candidate.Utility == incumbent.Utility {
		if candidate.BudgetRemaining > incumbent.BudgetRemaining {
			return candidate
		}
		return incumbent
	}

	if candidate.Utility > incumbent.Utility {
		return candidate
	}
	return incumbent
}
