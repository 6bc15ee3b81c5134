package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Config holds service settings read from the environment.
// Call godotenv.Load before Load to pick up a .env file.
type Config struct {
	Port      string
	LogFormat string
	LogLevel  string

	// file, postgres, neo4j or sample
	ProblemSource string
	ProblemDir    string
	SeedPath      string

	DatabaseURL string

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// none, memory, redis or postgres
	CacheBackend  string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SearchWorkers int
	CORSOrigins   []string
}

// MaxSearchWorkers matches the per-request limit of the trip planner.
const MaxSearchWorkers = 32

var (
	problemSources = []string{"file", "postgres", "neo4j", "sample"}
	cacheBackends  = []string{"none", "memory", "redis", "postgres"}
)

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}

// Load reads the configuration and validates the enumerated settings.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          Get("PORT", "8080"),
		LogFormat:     Get("LOG_FORMAT", "console"),
		LogLevel:      Get("LOG_LEVEL", "info"),
		ProblemSource: strings.ToLower(Get("PROBLEM_SOURCE", "file")),
		ProblemDir:    Get("PROBLEM_DIR", "data/problems"),
		SeedPath:      Get("SEED_PATH", "data/seeds/problems.yaml"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		Neo4jURI:      Get("NEO4J_URI", ""),
		Neo4jUser:     Get("NEO4J_USER", "neo4j"),
		Neo4jPassword: Get("NEO4J_PASSWORD", ""),
		Neo4jDatabase: Get("NEO4J_DATABASE", "neo4j"),
		CacheBackend:  strings.ToLower(Get("CACHE_BACKEND", "none")),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: Get("REDIS_PASSWORD", ""),
	}

	var err error
	if cfg.RedisDB, err = GetInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = GetDuration("CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.SearchWorkers, err = GetInt("SEARCH_WORKERS", 1); err != nil {
		return nil, err
	}

	for _, o := range strings.Split(Get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if !slices.Contains(problemSources, cfg.ProblemSource) {
		return nil, fmt.Errorf("config: PROBLEM_SOURCE must be one of %v, got %q", problemSources, cfg.ProblemSource)
	}
	if !slices.Contains(cacheBackends, cfg.CacheBackend) {
		return nil, fmt.Errorf("config: CACHE_BACKEND must be one of %v, got %q", cacheBackends, cfg.CacheBackend)
	}
	if (cfg.ProblemSource == "postgres" || cfg.CacheBackend == "postgres") && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required for postgres")
	}
	if cfg.ProblemSource == "neo4j" && cfg.Neo4jURI == "" {
		return nil, fmt.Errorf("config: NEO4J_URI is required for PROBLEM_SOURCE=neo4j")
	}
	if cfg.SearchWorkers < 1 || cfg.SearchWorkers > MaxSearchWorkers {
		return nil, fmt.Errorf("config: SEARCH_WORKERS must be between 1 and %d, got %d", MaxSearchWorkers, cfg.SearchWorkers)
	}

	return cfg, nil
}
