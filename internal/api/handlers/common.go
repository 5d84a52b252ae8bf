package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agentmart/agentmart/internal/api/middleware"
	"github.com/agentmart/agentmart/internal/domain"
	"github.com/agentmart/agentmart/internal/service"
	"github.com/agentmart/agentmart/internal/store"
)

// RPC error codes surfaced to clients.
const (
	codeUnauthorized = "UNAUTHORIZED"
	codeForbidden    = "FORBIDDEN"
	codeNotFound     = "NOT_FOUND"
	codeBadRequest   = "BAD_REQUEST"
	codeInternal     = "INTERNAL_SERVER_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps service and store errors onto RPC error codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrMissingCloudProvider),
		errors.Is(err, store.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	case errors.Is(err, service.ErrAgentNotFound),
		errors.Is(err, service.ErrDeploymentNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// requireUser writes UNAUTHORIZED and returns nil when the request carries
// no authenticated session.
func requireUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
		return nil
	}
	return user
}
