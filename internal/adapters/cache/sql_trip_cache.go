package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
)

// SQLTripCache is a Postgres-backed cache of computed trip plans.
// A zero TTL keeps entries forever.
type SQLTripCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLTripCache(db *sql.DB, ttl time.Duration) *SQLTripCache {
	return &SQLTripCache{DB: db, TTL: ttl}
}

// Fetch a cached plan that has not expired.
func (s *SQLTripCache) Get(
	ctx context.Context,
	key string,
) (_ *domain.TripPlan, _ bool, err error) {
	defer obs.Time(ctx, "trip.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("trip cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get trip cache: key must not be empty")
	}

	q := `
	SELECT plan
	FROM trip_plan_cache
	WHERE cache_key = $1
		AND (expires_at IS NULL OR expires_at > $2);
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key, time.Now()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get trip cache: query trip_plan_cache table: %w", err)
	}

	var plan domain.TripPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return nil, false, fmt.Errorf("get trip cache: decode plan: %w", err)
	}

	return &plan, true, nil
}

// Store a plan under key, replacing any previous entry.
func (s *SQLTripCache) Put(ctx context.Context, key string, plan *domain.TripPlan) error {
	if s.DB == nil {
		return errors.New("trip cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert trip cache: key must not be empty")
	}

	if plan == nil {
		return errors.New("insert trip cache: plan must not be nil")
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert trip cache: encode plan: %w", err)
	}

	var expiresAt sql.NullTime
	if s.TTL > 0 {
		expiresAt = sql.NullTime{Time: time.Now().Add(s.TTL), Valid: true}
	}

	q := `
	INSERT INTO trip_plan_cache (cache_key, plan, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET plan = EXCLUDED.plan,
		expires_at = EXCLUDED.expires_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, string(payload), expiresAt); err != nil {
		return fmt.Errorf("insert trip cache key=%q: %w", key, err)
	}

	return nil
}

// Remove expired entries.
func (s *SQLTripCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("trip cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM trip_plan_cache WHERE expires_at <= $1;`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("purge trip cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge trip cache: rows affected: %w", err)
	}

	return n, nil
}
