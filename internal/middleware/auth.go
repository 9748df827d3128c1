package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/HammerMeetNail/tripboard/internal/handlers"
	"github.com/HammerMeetNail/tripboard/internal/logging"
	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.Member, error)
}

type AuthMiddleware struct {
	sessions SessionValidator
}

func NewAuthMiddleware(sessions SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the session token, if any, and stores the member in
// the request context. Requests without a valid session pass through
// anonymously; RequireAuth decides whether that is acceptable.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := handlers.SessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		member, err := m.sessions.ValidateSession(r.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrSessionNotFound) {
				logging.Error("Failed to validate session", map[string]interface{}{"error": err.Error()})
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetUserInContext(r.Context(), member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handlers.GetUserFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
