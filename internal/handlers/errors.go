package handlers

import (
	"errors"
	"net/http"

	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

var badRequestErrors = []error{
	models.ErrTitleRequired,
	models.ErrTitleTooLong,
	models.ErrDescriptionLong,
	models.ErrLocationLong,
	models.ErrInvalidCategory,
	models.ErrInvalidBudget,
	models.ErrInvalidStatus,
	models.ErrCommentRequired,
	models.ErrCommentTooLong,
	services.ErrInvalidDay,
	services.ErrDayRequired,
	services.ErrInvalidEmoji,
	services.ErrInvalidReaction,
	services.ErrInvalidVote,
	services.ErrInvalidActivity,
}

// writeTripError maps trip mutation errors onto HTTP statuses. Unknown errors
// are logged under failure and answered with a 500.
func writeTripError(w http.ResponseWriter, err error, failure string) {
	switch {
	case errors.Is(err, services.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, services.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrNotCreator):
		writeError(w, http.StatusForbidden, "Only the creator can change this activity")
	case errors.Is(err, services.ErrNotCommentAuthor):
		writeError(w, http.StatusForbidden, "Only the author can change this comment")
	default:
		for _, target := range badRequestErrors {
			if errors.Is(err, target) {
				writeError(w, http.StatusBadRequest, capitalize(target.Error()))
				return
			}
		}
		writeInternalError(w, failure, err)
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
