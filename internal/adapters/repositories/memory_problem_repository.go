package repositories

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"trip-planner-service/internal/domain"
)

// In-memory implementation of the ProblemRepository and ProblemWriter ports.
// Safe for concurrent use.
type MemoryProblemRepository struct {
	mu       sync.RWMutex
	problems map[string]domain.ProblemDefinition
}

func NewMemoryProblemRepository(problems map[string]domain.ProblemDefinition) *MemoryProblemRepository {
	m := make(map[string]domain.ProblemDefinition, len(problems))
	for id, def := range problems {
		m[id] = def
	}
	return &MemoryProblemRepository{problems: m}
}

func (m *MemoryProblemRepository) GetProblem(ctx context.Context, id string) (*domain.ProblemDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	def, ok := m.problems[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("get problem %q: %w", id, domain.ErrProblemNotFound)
	}

	return &def, nil
}

func (m *MemoryProblemRepository) ListProblems(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.problems))
	for id := range m.problems {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids, nil
}

func (m *MemoryProblemRepository) SaveProblem(ctx context.Context, id string, def domain.ProblemDefinition) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("save problem: %w", &domain.ConfigurationError{Field: "problem id", Reason: "must be non-empty"})
	}
	if _, err := domain.BuildGraph(def); err != nil {
		return fmt.Errorf("save problem %q: %w", id, err)
	}

	m.mu.Lock()
	m.problems[id] = def
	m.mu.Unlock()

	return nil
}
