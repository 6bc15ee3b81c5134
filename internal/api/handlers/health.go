package handlers

import (
	"net/http"
	"trip-planner-service/internal/ports"
)

// HealthHandler reports liveness and whether the problem source answers.
type HealthHandler struct {
	Repo ports.ProblemRepository
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids, err := h.Repo.ListProblems(r.Context())
	if err != nil {
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"error":  "problem source unavailable",
		})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "problems": len(ids)})
}
