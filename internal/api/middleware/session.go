package middleware

import (
	"context"
	"net/http"

	"github.com/agentmart/agentmart/internal/auth"
	"github.com/agentmart/agentmart/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

// Session resolves the session cookie to a user record and attaches it to
// the request context. Requests without a valid session pass through
// anonymously; procedures that require authentication reject them
// downstream.
func Session(sessions *auth.Sessions, users domain.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			openID, ok := sessions.Parse(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByOpenID(r.Context(), openID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
