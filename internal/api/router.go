package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/rs/cors"
)

type RouterConfig struct {
	Repo           ports.ProblemRepository
	Cache          ports.TripCache
	DefaultWorkers int
	CORSOrigins    []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Repo: cfg.Repo}
	problemHandler := &handlers.ProblemHandler{Repo: cfg.Repo}
	tripHandler := &handlers.TripHandler{
		Repo:           cfg.Repo,
		Cache:          cfg.Cache,
		DefaultWorkers: min(max(cfg.DefaultWorkers, 1), services.MaxWorkers),
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/problems", problemHandler.List)
	mux.HandleFunc("/problems/{id}", problemHandler.Get)
	mux.HandleFunc("/trips/plan", tripHandler.Plan)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	// Request ids are assigned before logging so every access line carries one.
	return requestIDMiddleware(loggingMiddleware(c.Handler(mux)))
}
