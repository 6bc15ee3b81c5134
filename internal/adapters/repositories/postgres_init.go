package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"trip-planner-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProblemsQuery := `
	CREATE TABLE IF NOT EXISTS problems (
		problem_id TEXT PRIMARY KEY
	);
	`

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS problem_places (
		problem_id TEXT NOT NULL REFERENCES problems(problem_id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		utility DOUBLE PRECISION NOT NULL,
		cost DOUBLE PRECISION NOT NULL,
		time_days DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (problem_id, name)
	);
	`

	// Path cities are not foreign keys: dangling references are reported by
	// graph construction when the problem is loaded.
	createPathsQuery := `
	CREATE TABLE IF NOT EXISTS problem_paths (
		problem_id TEXT NOT NULL REFERENCES problems(problem_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		city1 TEXT NOT NULL,
		city2 TEXT NOT NULL,
		time_days DOUBLE PRECISION NOT NULL,
		utility DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (problem_id, position)
	);
	`

	createTripCacheQuery := `
	CREATE TABLE IF NOT EXISTS trip_plan_cache (
		cache_key TEXT PRIMARY KEY,
		plan JSONB NOT NULL,
		expires_at TIMESTAMPTZ
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trip_plan_cache_expires_at
	ON trip_plan_cache(expires_at);
	`

	statements := []string{
		createProblemsQuery,
		createPlacesQuery,
		createPathsQuery,
		createTripCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with every problem of a seed set, in id order.
func SeedProblems(ctx context.Context, repo *PostgresProblemRepository, problems map[string]domain.ProblemDefinition) error {
	ids := make([]string, 0, len(problems))
	for id := range problems {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := repo.SaveProblem(ctx, id, problems[id]); err != nil {
			return fmt.Errorf("seed problems: %w", err)
		}
	}

	return nil
}
