package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libris-backend/internal/domain"
	"libris-backend/internal/logger"
	"libris-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Rule  string `json:"rule,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the domain failure taxonomy onto HTTP status codes. Every
// failure carries its specific reason; only unexpected errors collapse to a
// generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pv *domain.PolicyViolationError
	if errors.As(err, &pv) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: pv.Error(), Rule: pv.Rule})
		return
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrAlreadyProcessed):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	default:
		requestID, _ := r.Context().Value(requestIDContextKey).(string)
		logger.Error("Internal error", "path", r.URL.Path, "request_id", requestID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
