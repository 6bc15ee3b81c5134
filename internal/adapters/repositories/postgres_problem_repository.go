package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// Postgres-backed implementation of the ProblemRepository and ProblemWriter ports.
type PostgresProblemRepository struct{ DB *sql.DB }

func NewPostgresProblemRepository(db *sql.DB) *PostgresProblemRepository {
	return &PostgresProblemRepository{DB: db}
}

// Return the problem stored under id.
func (s *PostgresProblemRepository) GetProblem(
	ctx context.Context,
	id string,
) (_ *domain.ProblemDefinition, err error) {
	defer obs.Time(ctx, "problems.postgres.GetProblem")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres problem repository: DB is nil")
	}

	var exists int
	err = s.DB.QueryRowContext(ctx, `SELECT 1 FROM problems WHERE problem_id = $1;`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get problem %q: %w", id, domain.ErrProblemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get problem %q: query problems table: %w", id, err)
	}

	def := &domain.ProblemDefinition{Places: map[string]domain.PlaceSpec{}}

	placesQuery := `
	SELECT
		name,
		utility,
		cost,
		time_days
	FROM problem_places
	WHERE problem_id = $1;
	`
	rows, err := s.DB.QueryContext(ctx, placesQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get problem %q: query problem_places table: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var spec domain.PlaceSpec
		if err := rows.Scan(&name, &spec.Utility, &spec.Cost, &spec.Time); err != nil {
			return nil, fmt.Errorf("get problem %q: scan place row: %w", id, err)
		}
		def.Places[name] = spec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get problem %q: place row iteration: %w", id, err)
	}

	pathsQuery := `
	SELECT
		city1,
		city2,
		time_days,
		utility
	FROM problem_paths
	WHERE problem_id = $1
	ORDER BY position;
	`
	pathRows, err := s.DB.QueryContext(ctx, pathsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get problem %q: query problem_paths table: %w", id, err)
	}
	defer pathRows.Close()

	for pathRows.Next() {
		var spec domain.PathSpec
		if err := pathRows.Scan(&spec.City1, &spec.City2, &spec.Time, &spec.Utility); err != nil {
			return nil, fmt.Errorf("get problem %q: scan path row: %w", id, err)
		}
		def.Paths = append(def.Paths, spec)
	}
	if err := pathRows.Err(); err != nil {
		return nil, fmt.Errorf("get problem %q: path row iteration: %w", id, err)
	}

	return def, nil
}

// Return the ids of all stored problems.
func (s *PostgresProblemRepository) ListProblems(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("postgres problem repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT problem_id FROM problems ORDER BY problem_id;`)
	if err != nil {
		return nil, fmt.Errorf("list problems: query problems table: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list problems: scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list problems: row iteration: %w", err)
	}

	return ids, nil
}

// Replace the problem stored under id. The definition is validated first so
// the store only ever holds problems that build into a graph.
func (s *PostgresProblemRepository) SaveProblem(ctx context.Context, id string, def domain.ProblemDefinition) error {
	if s.DB == nil {
		return errors.New("postgres problem repository: DB is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("save problem: %w", &domain.ConfigurationError{Field: "problem id", Reason: "must be non-empty"})
	}
	if _, err := domain.BuildGraph(def); err != nil {
		return fmt.Errorf("save problem %q: %w", id, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save problem %q: begin tx: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	// Cascades to places and paths.
	if _, err := tx.ExecContext(ctx, `DELETE FROM problems WHERE problem_id = $1;`, id); err != nil {
		return fmt.Errorf("save problem %q: delete previous: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO problems (problem_id) VALUES ($1);`, id); err != nil {
		return fmt.Errorf("save problem %q: insert problem: %w", id, err)
	}

	placeStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO problem_places (problem_id, name, utility, cost, time_days)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("save problem %q: prepare place insert: %w", id, err)
	}
	defer placeStmt.Close()

	for name, p := range def.Places {
		if _, err := placeStmt.ExecContext(ctx, id, name, p.Utility, p.Cost, p.Time); err != nil {
			return fmt.Errorf("save problem %q: insert place %q: %w", id, name, err)
		}
	}

	pathStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO problem_paths (problem_id, position, city1, city2, time_days, utility)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("save problem %q: prepare path insert: %w", id, err)
	}
	defer pathStmt.Close()

	for i, p := range def.Paths {
		if _, err := pathStmt.ExecContext(ctx, id, i, p.City1, p.City2, p.Time, p.Utility); err != nil {
			return fmt.Errorf("save problem %q: insert path #%d: %w", id, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save problem %q: commit tx: %w", id, err)
	}

	return nil
}
