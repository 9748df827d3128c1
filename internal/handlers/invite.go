package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/HammerMeetNail/tripboard/internal/services"
)

type InviteHandler struct {
	inviteService services.InviteServiceInterface
	baseURL       string
}

// NewInviteHandler builds invite links against baseURL, or against the
// request's own host when baseURL is empty.
func NewInviteHandler(inviteService services.InviteServiceInterface, baseURL string) *InviteHandler {
	return &InviteHandler{inviteService: inviteService, baseURL: strings.TrimSuffix(baseURL, "/")}
}

type InviteEmailRequest struct {
	Email string `json:"email"`
}

func (h *InviteHandler) Link(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	invite, err := h.inviteService.CreateInvite(r.Context(), member, h.publicBaseURL(r))
	if err != nil {
		writeInternalError(w, "Failed to create invite", err)
		return
	}
	writeJSON(w, http.StatusOK, invite)
}

func (h *InviteHandler) Email(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req InviteEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.inviteService.SendInviteEmail(r.Context(), member, h.publicBaseURL(r), req.Email)
	if errors.Is(err, services.ErrInvalidEmail) {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if errors.Is(err, services.ErrEmailUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "Email delivery is not configured")
		return
	}
	if err != nil {
		writeInternalError(w, "Failed to send invite", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Invite sent"})
}

func (h *InviteHandler) publicBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme, _, _ = strings.Cut(proto, ",")
		scheme = strings.TrimSpace(scheme)
	}
	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host, _, _ = strings.Cut(fwd, ",")
		host = strings.TrimSpace(host)
	}
	return scheme + "://" + host
}
