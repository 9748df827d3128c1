package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type TripHandler struct {
	tripService services.TripServiceInterface
}

func NewTripHandler(tripService services.TripServiceInterface) *TripHandler {
	return &TripHandler{tripService: tripService}
}

type ReplaceActivitiesRequest struct {
	Activities json.RawMessage `json:"activities"`
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.tripService.GetTrip(r.Context())
	if err != nil {
		writeInternalError(w, "Failed to load trip", err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// Replace overwrites the activity list with the client's copy. The service
// decides which changes the session member may make.
func (h *TripHandler) Replace(w http.ResponseWriter, r *http.Request) {
	member := GetUserFromContext(r.Context())
	if member == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req ReplaceActivitiesRequest
	if err := decodeJSONLimit(w, r, &req, maxTripBodyBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var activities []models.Activity
	if len(req.Activities) == 0 || req.Activities[0] != '[' {
		writeError(w, http.StatusBadRequest, "Activities must be an array")
		return
	}
	if err := json.Unmarshal(req.Activities, &activities); err != nil {
		writeError(w, http.StatusBadRequest, "Activities must be an array")
		return
	}

	trip, err := h.tripService.ReplaceActivities(r.Context(), member, activities)
	if err != nil {
		writeTripError(w, err, "Failed to update trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
