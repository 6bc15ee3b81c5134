package services

import (
	"context"
	"errors"
	"testing"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PlanTripSuite struct {
	suite.Suite
	repo  *repositories.MemoryProblemRepository
	cache *cache.MemoryTripCache
}

func (s *PlanTripSuite) SetupTest() {
	s.repo = repositories.NewMemoryProblemRepository(map[string]domain.ProblemDefinition{
		"sample": domain.SampleProblem(),
	})
	s.cache = cache.NewMemoryTripCache(0)
}

func (s *PlanTripSuite) request() PlanTripRequest {
	return PlanTripRequest{ProblemID: "sample", Start: "Paris", Params: sampleParams}
}

func (s *PlanTripSuite) TestStoredProblem() {
	plan, err := PlanTrip(context.Background(), s.request(), s.repo, s.cache)
	s.Require().NoError(err)

	s.Equal("sample", plan.ProblemID)
	s.Equal("Paris", plan.Start)
	s.Equal([]string{"Paris", "Atlantis", "Venice"}, plan.Itinerary())
	s.Require().Len(plan.Legs, 2)
	s.Equal(domain.TripLeg{From: "Paris", To: "Atlantis", Time: 1, Utility: 3}, plan.Legs[0])
	s.Equal(domain.TripLeg{From: "Atlantis", To: "Venice", Time: 0.75, Utility: 5}, plan.Legs[1])
	s.Equal(26.0, plan.Utility)
	s.InDelta(175.0, plan.BudgetRemaining, 1e-9)
	s.Equal(1, s.cache.Len())
}

func (s *PlanTripSuite) TestCacheHitIsReturned() {
	req := s.request()
	key, err := TripCacheKey("sample", domain.SampleProblem(), "Paris", req.Params)
	s.Require().NoError(err)

	marker := &domain.TripPlan{ProblemID: "sample", Start: "cached", Utility: -1}
	s.Require().NoError(s.cache.Put(context.Background(), key, marker))

	plan, err := PlanTrip(context.Background(), req, s.repo, s.cache)
	s.Require().NoError(err)
	s.Equal("cached", plan.Start)
}

func (s *PlanTripSuite) TestTraceBypassesCache() {
	req := s.request()
	req.Trace = true

	plan, err := PlanTrip(context.Background(), req, s.repo, s.cache)
	s.Require().NoError(err)
	s.Greater(plan.TracedRoutes, 1)
	s.Equal(0, s.cache.Len())
}

func (s *PlanTripSuite) TestParallelMatchesSequential() {
	req := s.request()
	seq, err := PlanTrip(context.Background(), req, s.repo, nil)
	s.Require().NoError(err)

	req.Workers = 4
	par, err := PlanTrip(context.Background(), req, s.repo, nil)
	s.Require().NoError(err)

	s.Equal(seq, par)
}

func (s *PlanTripSuite) TestInlineProblem() {
	def := domain.ProblemDefinition{
		Places: map[string]domain.PlaceSpec{"Solo": {Utility: 3}},
	}
	plan, err := PlanTrip(context.Background(), PlanTripRequest{Problem: &def, Start: "Solo", Params: sampleParams}, nil, nil)
	s.Require().NoError(err)
	s.Equal([]string{"Solo"}, plan.Itinerary())
	s.Empty(plan.Legs)
	s.Equal(3.0, plan.Utility)
}

func (s *PlanTripSuite) TestErrors() {
	ctx := context.Background()

	req := s.request()
	req.Start = "Atlantis City"
	_, err := PlanTrip(ctx, req, s.repo, s.cache)
	var refErr *domain.ReferenceError
	s.Require().True(errors.As(err, &refErr), "got %v", err)
	s.Equal("Atlantis City", refErr.City)

	req = s.request()
	req.ProblemID = "missing"
	_, err = PlanTrip(ctx, req, s.repo, s.cache)
	s.True(errors.Is(err, domain.ErrProblemNotFound), "got %v", err)

	req = s.request()
	req.ProblemID = ""
	_, err = PlanTrip(ctx, req, s.repo, s.cache)
	var cfgErr *domain.ConfigurationError
	s.True(errors.As(err, &cfgErr), "got %v", err)

	req = s.request()
	req.Start = ""
	_, err = PlanTrip(ctx, req, s.repo, s.cache)
	s.True(errors.As(err, &cfgErr), "got %v", err)

	broken := domain.ProblemDefinition{
		Places: map[string]domain.PlaceSpec{"A": {}},
		Paths:  []domain.PathSpec{{City1: "A", City2: "B", Time: 1}},
	}
	_, err = PlanTrip(ctx, PlanTripRequest{Problem: &broken, Start: "A", Params: sampleParams}, nil, nil)
	s.True(errors.As(err, &refErr), "got %v", err)
}

func TestPlanTripSuite(t *testing.T) {
	suite.Run(t, new(PlanTripSuite))
}

func TestTripCacheKeyIsStable(t *testing.T) {
	a, err := TripCacheKey("sample", domain.SampleProblem(), "Paris", sampleParams)
	require.NoError(t, err)
	b, err := TripCacheKey("sample", domain.SampleProblem(), "Paris", sampleParams)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := sampleParams
	other.Budget++
	c, err := TripCacheKey("sample", domain.SampleProblem(), "Paris", other)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
