package services

import (
	"context"
	"fmt"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

type TripService struct {
	store *TripStore
}

func NewTripService(store *TripStore) *TripService {
	return &TripService{store: store}
}

func (s *TripService) GetTrip(ctx context.Context) (*models.Trip, error) {
	return s.store.Load(ctx)
}

// ReplaceActivities overwrites the activity list with a client's copy, as
// sent after an offline sync. Each entry needs a unique id. The member may
// only add, change or drop activities they created; on everyone else's
// activities they may only change their own reactions, votes and comments.
// Other members' entries are always kept as stored.
func (s *TripService) ReplaceActivities(ctx context.Context, member *models.Member, activities []models.Activity) (*models.Trip, error) {
	seen := make(map[string]struct{}, len(activities))
	for i := range activities {
		id := activities[i].ID
		if id == "" {
			return nil, fmt.Errorf("%w: activity %d has no id", ErrInvalidActivity, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidActivity, id)
		}
		seen[id] = struct{}{}
	}

	return s.store.Update(ctx, func(trip *models.Trip) error {
		for i := range trip.Activities {
			stored := &trip.Activities[i]
			if _, kept := seen[stored.ID]; !kept && !member.Owns(stored.CreatorID, stored.CreatorName) {
				return fmt.Errorf("%w: %q", ErrNotCreator, stored.ID)
			}
		}

		merged := make([]models.Activity, 0, len(activities))
		for i := range activities {
			var stored *models.Activity
			if idx := trip.ActivityIndex(activities[i].ID); idx >= 0 {
				stored = &trip.Activities[idx]
			}
			a, err := mergeActivity(trip, stored, activities[i], member)
			if err != nil {
				return err
			}
			merged = append(merged, a)
		}
		trip.Activities = merged
		return nil
	})
}

// MigrateLegacyReactions folds likes and dislikes into thumbs up/down emoji
// groups on every activity that has no emoji reactions yet. It returns how
// many activities changed; nothing is written when none did.
func (s *TripService) MigrateLegacyReactions(ctx context.Context) (int, error) {
	trip, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for i := range trip.Activities {
		if trip.Activities[i].MigrateLegacyReactions() {
			migrated++
		}
	}
	if migrated == 0 {
		return 0, nil
	}
	if err := s.store.Save(ctx, trip); err != nil {
		return 0, err
	}
	return migrated, nil
}

// Reset drops the snapshot so the next read reseeds an empty trip.
func (s *TripService) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}

// findActivity returns a pointer into trip.Activities.
func findActivity(trip *models.Trip, id string) (*models.Activity, error) {
	idx := trip.ActivityIndex(id)
	if idx < 0 {
		return nil, ErrActivityNotFound
	}
	return &trip.Activities[idx], nil
}
