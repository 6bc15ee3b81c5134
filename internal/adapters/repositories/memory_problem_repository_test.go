package repositories

import (
	"context"
	"errors"
	"testing"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProblemRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProblemRepository(map[string]domain.ProblemDefinition{
		"sample": domain.SampleProblem(),
	})

	require.NoError(t, repo.SaveProblem(ctx, "solo", domain.ProblemDefinition{
		Places: map[string]domain.PlaceSpec{"Solo": {Utility: 1}},
	}))

	ids, err := repo.ListProblems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sample", "solo"}, ids)

	def, err := repo.GetProblem(ctx, "sample")
	require.NoError(t, err)
	assert.Len(t, def.Paths, 6)

	_, err = repo.GetProblem(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrProblemNotFound))
}

func TestMemoryProblemRepositoryRejectsInvalidProblems(t *testing.T) {
	repo := NewMemoryProblemRepository(nil)

	err := repo.SaveProblem(context.Background(), "broken", domain.ProblemDefinition{
		Places: map[string]domain.PlaceSpec{"A": {}},
		Paths:  []domain.PathSpec{{City1: "A", City2: "Z", Time: 1}},
	})
	var refErr *domain.ReferenceError
	require.True(t, errors.As(err, &refErr), "got %v", err)

	err = repo.SaveProblem(context.Background(), " ", domain.SampleProblem())
	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
}
