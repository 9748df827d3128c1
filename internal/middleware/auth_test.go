package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/tripboard/internal/handlers"
	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type fakeSessions struct {
	member *models.Member
	err    error
	tokens []string
}

func (f *fakeSessions) ValidateSession(ctx context.Context, token string) (*models.Member, error) {
	f.tokens = append(f.tokens, token)
	if f.err != nil {
		return nil, f.err
	}
	return f.member, nil
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := handlers.GetUserFromContext(r.Context()); user != nil {
			_, _ = w.Write([]byte(user.Name))
			return
		}
		_, _ = w.Write([]byte("anonymous"))
	})
}

func TestAuthenticate_BearerHeaderWinsOverCookie(t *testing.T) {
	sessions := &fakeSessions{member: &models.Member{ID: uuid.New(), Name: "Alice"}}
	m := NewAuthMiddleware(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/trip", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})
	rec := httptest.NewRecorder()

	m.Authenticate(echoUser()).ServeHTTP(rec, req)

	if rec.Body.String() != "Alice" {
		t.Fatalf("expected Alice in context, got %q", rec.Body.String())
	}
	if len(sessions.tokens) != 1 || sessions.tokens[0] != "header-token" {
		t.Fatalf("expected header token to be validated, got %v", sessions.tokens)
	}
}

func TestAuthenticate_FallsBackToCookie(t *testing.T) {
	sessions := &fakeSessions{member: &models.Member{ID: uuid.New(), Name: "Bob"}}
	m := NewAuthMiddleware(sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/trip", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie-token"})
	rec := httptest.NewRecorder()

	m.Authenticate(echoUser()).ServeHTTP(rec, req)

	if rec.Body.String() != "Bob" || sessions.tokens[0] != "cookie-token" {
		t.Fatalf("expected cookie session, got body=%q tokens=%v", rec.Body.String(), sessions.tokens)
	}
}

func TestAuthenticate_InvalidSessionIsAnonymous(t *testing.T) {
	for _, err := range []error{services.ErrSessionNotFound, errors.New("redis down")} {
		m := NewAuthMiddleware(&fakeSessions{err: err})

		req := httptest.NewRequest(http.MethodGet, "/api/trip", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()

		m.Authenticate(echoUser()).ServeHTTP(rec, req)

		if rec.Body.String() != "anonymous" {
			t.Fatalf("expected anonymous request for %v, got %q", err, rec.Body.String())
		}
	}
}

func TestAuthenticate_NoTokenSkipsValidation(t *testing.T) {
	sessions := &fakeSessions{}
	m := NewAuthMiddleware(sessions)

	rec := httptest.NewRecorder()
	m.Authenticate(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(sessions.tokens) != 0 {
		t.Fatalf("expected no validation, got %v", sessions.tokens)
	}
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(&fakeSessions{})
	handler := m.RequireAuth(echoUser())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trip", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trip", nil)
	req = req.WithContext(handlers.SetUserInContext(req.Context(), &models.Member{Name: "Carol"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "Carol" {
		t.Fatalf("expected authenticated pass-through, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestNoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	NoStore(echoUser()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store, got %q", got)
	}
}
