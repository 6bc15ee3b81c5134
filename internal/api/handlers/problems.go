package handlers

import (
	"net/http"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/ports"
)

// ProblemHandler exposes read-only problem retrieval endpoints.
type ProblemHandler struct {
	Repo ports.ProblemRepository
}

func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids, err := h.Repo.ListProblems(r.Context())
	if err != nil {
		writeServiceError(w, r, "list problems", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListProblemsResponse{Problems: ids})
}

func (h *ProblemHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "problem id is required")
		return
	}

	def, err := h.Repo.GetProblem(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get problem", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ProblemResponse{ID: id, Problem: *def})
}
