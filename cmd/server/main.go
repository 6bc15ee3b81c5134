package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/graphdb"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/platform/redisdb"
	"trip-planner-service/internal/ports"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (file/Postgres/Neo4j, Redis/Postgres) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	obs.SetupLogger(cfg.LogFormat, cfg.LogLevel)

	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	var pg *sql.DB
	if cfg.ProblemSource == "postgres" || cfg.CacheBackend == "postgres" {
		pg, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to postgres")
		}
		closers = append(closers, func() { _ = pg.Close() })

		if err := repositories.InitSchema(ctx, pg); err != nil {
			log.Fatal().Err(err).Msg("init schema")
		}
	}

	repo, closeRepo, err := openProblemRepository(ctx, cfg, pg)
	if err != nil {
		log.Fatal().Err(err).Msg("open problem repository")
	}
	closers = append(closers, closeRepo)

	tripCache, closeCache, err := openTripCache(ctx, cfg, pg)
	if err != nil {
		log.Fatal().Err(err).Msg("open trip cache")
	}
	closers = append(closers, closeCache)

	router := api.NewRouter(api.RouterConfig{
		Repo:           repo,
		Cache:          tripCache,
		DefaultWorkers: cfg.SearchWorkers,
		CORSOrigins:    cfg.CORSOrigins,
	})

	// Searches are CPU bound and may take a while on larger problems.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", srv.Addr).
		Str("problem_source", cfg.ProblemSource).
		Str("cache", cfg.CacheBackend).
		Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server stopped")
	}
}

func openProblemRepository(ctx context.Context, cfg *config.Config, pg *sql.DB) (ports.ProblemRepository, func(), error) {
	noop := func() {}

	switch cfg.ProblemSource {
	case "postgres":
		return repositories.NewPostgresProblemRepository(pg), noop, nil
	case "neo4j":
		driver, err := graphdb.Open(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err != nil {
			return nil, nil, err
		}
		closeDriver := func() { _ = driver.Close(context.Background()) }
		return repositories.NewNeo4jProblemRepository(driver, cfg.Neo4jDatabase), closeDriver, nil
	case "sample":
		return repositories.NewMemoryProblemRepository(map[string]domain.ProblemDefinition{
			"sample": domain.SampleProblem(),
		}), noop, nil
	case "file":
		if _, err := os.Stat(cfg.ProblemDir); err != nil {
			return nil, nil, fmt.Errorf("problem dir %q: %w", cfg.ProblemDir, err)
		}
		return repositories.NewFileProblemRepository(cfg.ProblemDir), noop, nil
	}

	return nil, nil, fmt.Errorf("unsupported problem source %q", cfg.ProblemSource)
}

func openTripCache(ctx context.Context, cfg *config.Config, pg *sql.DB) (ports.TripCache, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case "none":
		return nil, noop, nil
	case "memory":
		return cache.NewMemoryTripCache(cfg.CacheTTL), noop, nil
	case "postgres":
		return cache.NewSQLTripCache(pg, cfg.CacheTTL), noop, nil
	case "redis":
		client, err := redisdb.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisTripCache(client, cfg.CacheTTL), func() { _ = client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
}
