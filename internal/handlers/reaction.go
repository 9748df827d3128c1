package handlers

import (
	"net/http"
	"strings"

	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type ReactionHandler struct {
	reactionService services.ReactionServiceInterface
}

func NewReactionHandler(reactionService services.ReactionServiceInterface) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

type LikeRequest struct {
	ActivityID string              `json:"activityId"`
	Type       models.ReactionKind `json:"type"`
}

type AddReactionRequest struct {
	Emoji string `json:"emoji"`
}

type VoteRequest struct {
	ActivityID string           `json:"activityId"`
	Vote       models.VoteValue `json:"vote"`
}

type AllowedEmojisResponse struct {
	Emojis []string `json:"emojis"`
}

// ToggleLike handles both likes and dislikes; the two are mutually exclusive.
func (h *ReactionHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req LikeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ActivityID) == "" {
		writeError(w, http.StatusBadRequest, "Activity ID is required")
		return
	}

	activity, err := h.reactionService.ToggleLike(r.Context(), member, req.ActivityID, req.Type)
	if err != nil {
		writeTripError(w, err, "Failed to update like")
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Activity: activity})
}

func (h *ReactionHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req AddReactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, err := h.reactionService.ToggleReaction(r.Context(), member, r.PathValue("id"), req.Emoji)
	if err != nil {
		writeTripError(w, err, "Failed to update reaction")
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Activity: activity})
}

func (h *ReactionHandler) GetAllowedEmojis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AllowedEmojisResponse{Emojis: models.AllowedEmojis})
}

func (h *ReactionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req VoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ActivityID) == "" {
		writeError(w, http.StatusBadRequest, "Activity ID is required")
		return
	}

	activity, err := h.reactionService.CastVote(r.Context(), member, req.ActivityID, req.Vote)
	if err != nil {
		writeTripError(w, err, "Failed to record vote")
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Activity: activity})
}

func (h *ReactionHandler) RemoveVote(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	activityID := strings.TrimSpace(r.URL.Query().Get("activityId"))
	if activityID == "" {
		writeError(w, http.StatusBadRequest, "Activity ID is required")
		return
	}

	activity, err := h.reactionService.RemoveVote(r.Context(), member, activityID)
	if err != nil {
		writeTripError(w, err, "Failed to remove vote")
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Activity: activity})
}
