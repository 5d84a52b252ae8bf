package handlers

import (
	"errors"
	"net/http"

	"github.com/agentmart/agentmart/internal/api/middleware"
	"github.com/agentmart/agentmart/internal/auth"
	"github.com/agentmart/agentmart/internal/service"
	"github.com/agentmart/agentmart/internal/store"
)

type AuthHandler struct {
	sessions *auth.Sessions
	identity *service.IdentityService
}

func NewAuthHandler(sessions *auth.Sessions, identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{sessions: sessions, identity: identity}
}

// Callback receives the verified identity tuple from the external OAuth
// component, merges it into the user row, and issues the session cookie.
// The session is issued even when persistence is degraded; the user record
// catches up on the next sign-in.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var claims service.IdentityClaims
	if err := decode(r, &claims); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	if err := h.identity.SignIn(r.Context(), claims); err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, codeBadRequest, "openId is required")
			return
		}
		writeServiceError(w, err)
		return
	}
	if err := h.sessions.Issue(w, claims.OpenID); err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
		return
	}

	user, err := h.identity.Me(r.Context(), claims.OpenID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Me returns the session's user record, or null for anonymous requests.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Logout clears the session cookie. Logging out twice succeeds both times.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
