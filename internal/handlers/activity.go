package handlers

import (
	"net/http"

	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type ActivityHandler struct {
	activityService services.ActivityServiceInterface
}

func NewActivityHandler(activityService services.ActivityServiceInterface) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type ActivityResponse struct {
	Activity   *models.Activity  `json:"activity,omitempty"`
	Activities []models.Activity `json:"activities,omitempty"`
}

type ActivityListResponse struct {
	Activities []models.Activity `json:"activities"`
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.List(r.Context())
	if err != nil {
		writeInternalError(w, "Failed to load activities", err)
		return
	}
	writeJSON(w, http.StatusOK, ActivityListResponse{Activities: activities})
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var params models.CreateActivityParams
	if err := decodeJSON(w, r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, activities, err := h.activityService.Create(r.Context(), member, params)
	if err != nil {
		writeTripError(w, err, "Failed to create activity")
		return
	}
	writeJSON(w, http.StatusCreated, ActivityResponse{Activity: activity, Activities: activities})
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Activity ID is required")
		return
	}

	var patch models.ActivityPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, err := h.activityService.Update(r.Context(), member, id, patch)
	if err != nil {
		writeTripError(w, err, "Failed to update activity")
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Activity: activity})
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Activity ID is required")
		return
	}

	if err := h.activityService.Delete(r.Context(), member, id); err != nil {
		writeTripError(w, err, "Failed to delete activity")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
