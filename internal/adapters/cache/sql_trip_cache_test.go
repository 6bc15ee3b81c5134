package cache

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLCache(t *testing.T, ttl time.Duration) (*SQLTripCache, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLTripCache(db, ttl), mock
}

func TestSQLTripCacheGet(t *testing.T) {
	c, mock := newTestSQLCache(t, 0)
	payload, err := json.Marshal(samplePlan())
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT plan FROM trip_plan_cache WHERE cache_key = $1`)).
		WithArgs("k1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"plan"}).AddRow(payload))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT plan FROM trip_plan_cache WHERE cache_key = $1`)).
		WithArgs("k2", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"plan"}))

	got, hit, err := c.Get(context.Background(), "k1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, samplePlan(), got)

	_, hit, err = c.Get(context.Background(), "k2")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTripCachePut(t *testing.T) {
	c, mock := newTestSQLCache(t, time.Hour)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO trip_plan_cache (cache_key, plan, expires_at)`)).
		WithArgs("k1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, c.Put(context.Background(), "k1", samplePlan()))
	assert.Error(t, c.Put(context.Background(), "k1", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLTripCachePurge(t *testing.T) {
	c, mock := newTestSQLCache(t, time.Hour)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM trip_plan_cache WHERE expires_at <= $1`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := c.Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
