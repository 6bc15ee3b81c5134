package redisdb

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Open creates a Redis client and waits for PING to succeed.
func Open(ctx context.Context, addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second

	ping := func() error { return client.Ping(ctx).Err() }
	if err := backoff.Retry(ping, backoff.WithContext(backoff.WithMaxRetries(b, 5), ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis: ping %q: %w", addr, err)
	}

	return client, nil
}
