package handlers

import (
	"net/http"
	"strings"

	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type CommentHandler struct {
	commentService services.CommentServiceInterface
}

func NewCommentHandler(commentService services.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CommentRequest struct {
	ActivityID string `json:"activityId"`
	CommentID  string `json:"commentId"`
	Text       string `json:"text"`
}

type CommentResponse struct {
	Comment  *models.Comment  `json:"comment,omitempty"`
	Activity *models.Activity `json:"activity"`
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	member, req, ok := h.parse(w, r, false)
	if !ok {
		return
	}

	comment, activity, err := h.commentService.Add(r.Context(), member, req.ActivityID, req.Text)
	if err != nil {
		writeTripError(w, err, "Failed to add comment")
		return
	}
	writeJSON(w, http.StatusCreated, CommentResponse{Comment: comment, Activity: activity})
}

func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	member, req, ok := h.parse(w, r, true)
	if !ok {
		return
	}

	comment, activity, err := h.commentService.Edit(r.Context(), member, req.ActivityID, req.CommentID, req.Text)
	if err != nil {
		writeTripError(w, err, "Failed to edit comment")
		return
	}
	writeJSON(w, http.StatusOK, CommentResponse{Comment: comment, Activity: activity})
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	member, req, ok := h.parse(w, r, true)
	if !ok {
		return
	}

	activity, err := h.commentService.Delete(r.Context(), member, req.ActivityID, req.CommentID)
	if err != nil {
		writeTripError(w, err, "Failed to delete comment")
		return
	}
	writeJSON(w, http.StatusOK, CommentResponse{Activity: activity})
}

func (h *CommentHandler) parse(w http.ResponseWriter, r *http.Request, needComment bool) (*models.Member, CommentRequest, bool) {
	var req CommentRequest
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return nil, req, false
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, req, false
	}
	if strings.TrimSpace(req.ActivityID) == "" {
		writeError(w, http.StatusBadRequest, "Activity ID is required")
		return nil, req, false
	}
	if needComment && strings.TrimSpace(req.CommentID) == "" {
		writeError(w, http.StatusBadRequest, "Comment ID is required")
		return nil, req, false
	}
	return member, req, true
}
