package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/HammerMeetNail/tripboard/internal/logging"
	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type AuthHandler struct {
	authService services.AuthServiceInterface
	secure      bool
	sessionTTL  time.Duration
}

func NewAuthHandler(authService services.AuthServiceInterface, secure bool, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, secure: secure, sessionTTL: sessionTTL}
}

type JoinRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	InviteToken string `json:"inviteToken"`
}

type AuthResponse struct {
	User  *models.Member `json:"user"`
	Token string         `json:"token,omitempty"`
}

func (h *AuthHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, token, err := h.authService.Join(r.Context(), services.JoinParams{
		Name:        req.Name,
		Password:    req.Password,
		InviteToken: req.InviteToken,
	})
	switch {
	case errors.Is(err, models.ErrNameRequired), errors.Is(err, models.ErrNamePlaceholder):
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	case errors.Is(err, models.ErrNameTooLong):
		writeError(w, http.StatusBadRequest, "Name is too long")
		return
	case errors.Is(err, services.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	case errors.Is(err, services.ErrInvalidInvite):
		writeError(w, http.StatusUnauthorized, "Invite link is invalid or has expired")
		return
	case err != nil:
		writeInternalError(w, "Failed to join trip", err)
		return
	}

	h.setSessionCookie(w, token)
	logging.Info("Member joined", map[string]interface{}{"member_id": member.ID.String()})
	writeJSON(w, http.StatusOK, AuthResponse{User: member, Token: token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{User: member})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := SessionToken(r); token != "" {
		if err := h.authService.Logout(r.Context(), token); err != nil {
			logging.Warn("Failed to delete session", map[string]interface{}{"error": err.Error()})
		}
	}
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
