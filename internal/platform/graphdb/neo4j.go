package graphdb

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Open creates a Neo4j driver and verifies connectivity, retrying with
// exponential backoff while the server starts.
func Open(ctx context.Context, uri, username, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("open neo4j: create driver: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 15 * time.Second

	verify := func() error { return driver.VerifyConnectivity(ctx) }
	if err := backoff.Retry(verify, backoff.WithContext(backoff.WithMaxRetries(b, 5), ctx)); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("open neo4j: verify connectivity to %q: %w", uri, err)
	}

	return driver, nil
}
