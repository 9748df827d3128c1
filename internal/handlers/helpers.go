package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/HammerMeetNail/tripboard/internal/logging"
	"github.com/HammerMeetNail/tripboard/internal/models"
)

// SessionCookieName is the cookie that carries the session token for browsers.
const SessionCookieName = "auth_token"

type contextKey string

const userContextKey contextKey = "user"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func SetUserInContext(ctx context.Context, member *models.Member) context.Context {
	return context.WithValue(ctx, userContextKey, member)
}

func GetUserFromContext(ctx context.Context) *models.Member {
	member, _ := ctx.Value(userContextKey).(*models.Member)
	return member
}

// SessionToken returns the bearer token if present, else the session cookie.
func SessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error("Failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeInternalError logs err and answers with a generic 500.
func writeInternalError(w http.ResponseWriter, message string, err error) {
	logging.Error(message, map[string]interface{}{"error": err.Error()})
	writeError(w, http.StatusInternalServerError, message)
}

const (
	maxBodyBytes     = 16 * 1024
	maxTripBodyBytes = 1 << 20
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return decodeJSONLimit(w, r, dst, maxBodyBytes)
}

func decodeJSONLimit(w http.ResponseWriter, r *http.Request, dst any, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(dst)
}
