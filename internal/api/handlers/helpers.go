package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses.
// Unknown errors are logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var refErr *domain.ReferenceError
	var cfgErr *domain.ConfigurationError

	switch {
	case errors.Is(err, domain.ErrProblemNotFound):
		writeError(w, r, http.StatusNotFound, "problem not found")
	case errors.As(err, &refErr):
		writeError(w, r, http.StatusBadRequest, refErr.Error())
	case errors.As(err, &cfgErr):
		writeError(w, r, http.StatusUnprocessableEntity, cfgErr.Error())
	default:
		log.Error().Err(err).Str("req_id", obs.RequestID(r.Context())).Msg(op + " failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
