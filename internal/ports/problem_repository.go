package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Port: a boundary for retrieving problem definitions from a data source.
type ProblemRepository interface {
	// Return the definition stored under id, or an error wrapping
	// domain.ErrProblemNotFound.
	GetProblem(ctx context.Context, id string) (*domain.ProblemDefinition, error)
	// Return the ids of all stored problems, sorted.
	ListProblems(ctx context.Context) ([]string, error)
}

// Optional extension of ProblemRepository for stores that accept writes.
type ProblemWriter interface {
	SaveProblem(ctx context.Context, id string, def domain.ProblemDefinition) error
}
