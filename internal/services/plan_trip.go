package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

type PlanTripRequest struct {
	// ProblemID selects a stored problem. Ignored when Problem is set.
	ProblemID string
	// Problem is an inline definition.
	Problem *domain.ProblemDefinition
	Start   string
	Params  SearchParams
	// Workers > 1 explores the start place's subtrees concurrently.
	Workers int
	// Trace records every partial route; traced plans bypass the cache.
	Trace bool
}

// PlanTrip resolves the problem, searches for the best route from Start and
// returns it as a TripPlan.
//
// Cached plans are reused when a cache is supplied. Cache failures are logged
// and never fail the request.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	repo ports.ProblemRepository,
	cache ports.TripCache,
) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	start := strings.TrimSpace(req.Start)
	if start == "" {
		return nil, fmt.Errorf("plan trip: %w", &domain.ConfigurationError{Field: "start", Reason: "must be non-empty"})
	}

	def, problemID, err := resolveProblem(ctx, req, repo)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	places, err := domain.BuildGraph(*def)
	if err != nil {
		return nil, fmt.Errorf("plan trip: build graph for %q: %w", problemID, err)
	}

	origin, ok := places[start]
	if !ok {
		return nil, fmt.Errorf("plan trip: %w", &domain.ReferenceError{Index: -1, City: start})
	}

	useCache := cache != nil && !req.Trace
	var key string
	if useCache {
		key, err = TripCacheKey(problemID, *def, start, req.Params)
		if err != nil {
			return nil, fmt.Errorf("plan trip: %w", err)
		}

		cached, hit, err := cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("trip cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	var tracer *TraceCollector
	if req.Trace {
		tracer = NewTraceCollector()
	}

	route, err := runSearch(ctx, origin, req, tracer)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	plan := NewTripPlan(problemID, route)
	if tracer != nil {
		plan.TracedRoutes = tracer.Len()
	}

	if useCache {
		if err := cache.Put(ctx, key, plan); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("trip cache write failed")
		}
	}

	return plan, nil
}

func runSearch(ctx context.Context, origin *domain.Place, req PlanTripRequest, tracer *TraceCollector) (*domain.Route, error) {
	// A typed nil pointer must not reach the search as a non-nil Tracer.
	var t Tracer
	if tracer != nil {
		t = tracer
	}

	if req.Workers > 1 {
		return SearchParallel(ctx, origin, req.Params, t, req.Workers)
	}
	return Search(origin, req.Params, t)
}

func resolveProblem(
	ctx context.Context,
	req PlanTripRequest,
	repo ports.ProblemRepository,
) (*domain.ProblemDefinition, string, error) {
	if req.Problem != nil {
		return req.Problem, req.ProblemID, nil
	}

	id := strings.TrimSpace(req.ProblemID)
	if id == "" {
		return nil, "", &domain.ConfigurationError{Field: "problem", Reason: "either a problem id or an inline problem is required"}
	}
	if repo == nil {
		return nil, "", errors.New("problem repository is not configured")
	}

	def, err := repo.GetProblem(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get problem %q: %w", id, err)
	}

	return def, id, nil
}

// NewTripPlan detaches a route from the graph.
func NewTripPlan(problemID string, route *domain.Route) *domain.TripPlan {
	plan := &domain.TripPlan{
		ProblemID:       problemID,
		Stops:           []domain.TripStop{},
		Legs:            []domain.TripLeg{},
		Utility:         route.Utility,
		BudgetRemaining: route.BudgetRemaining,
		TimeRemaining:   route.TimeRemaining,
	}

	for _, e := range route.History {
		switch {
		case e.Place != nil:
			plan.Stops = append(plan.Stops, domain.TripStop{
				Place:   e.Place.Name,
				Utility: e.Place.Utility,
				Cost:    e.Place.Cost,
				Time:    e.Place.Time,
			})
		case e.Path != nil:
			plan.Legs = append(plan.Legs, domain.TripLeg{
				From:    e.Path.Origin.Name,
				To:      e.Path.Destination.Name,
				Time:    e.Path.Time,
				Utility: e.Path.Utility,
			})
		}
	}

	if len(plan.Stops) > 0 {
		plan.Start = plan.Stops[0].Place
	}

	return plan
}

// TripCacheKey derives a cache key from everything that influences the result.
// encoding/json writes map keys sorted, so equal definitions hash equally.
func TripCacheKey(problemID string, def domain.ProblemDefinition, start string, params SearchParams) (string, error) {
	payload, err := json.Marshal(struct {
		Problem domain.ProblemDefinition `json:"problem"`
		Start   string                   `json:"start"`
		Budget  float64                  `json:"budget"`
		Time    float64                  `json:"time"`
		Factor  float64                  `json:"factor"`
	}{def, start, params.Budget, params.TimeAvailable, params.TransitCostPerDay})
	if err != nil {
		return "", fmt.Errorf("trip cache key: marshal: %w", err)
	}

	return "trip:" + problemID + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}
