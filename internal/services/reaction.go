package services

import (
	"context"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

// ReactionService applies likes, emoji reactions and votes to activities.
// Membership sets are keyed by the member's name; votes by member id.
type ReactionService struct {
	store *TripStore
}

func NewReactionService(store *TripStore) *ReactionService {
	return &ReactionService{store: store}
}

func (s *ReactionService) ToggleLike(ctx context.Context, member *models.Member, activityID string, kind models.ReactionKind) (*models.Activity, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidReaction
	}
	return s.mutate(ctx, activityID, func(a *models.Activity) {
		a.Toggle(kind, member.Name)
	})
}

func (s *ReactionService) ToggleReaction(ctx context.Context, member *models.Member, activityID, emoji string) (*models.Activity, error) {
	emoji = models.NormalizeEmoji(emoji)
	if !models.IsAllowedEmoji(emoji) {
		return nil, ErrInvalidEmoji
	}
	return s.mutate(ctx, activityID, func(a *models.Activity) {
		a.ToggleReaction(emoji, member.Name)
	})
}

// CastVote records member's vote. Repeating the current vote retracts it.
func (s *ReactionService) CastVote(ctx context.Context, member *models.Member, activityID string, value models.VoteValue) (*models.Activity, error) {
	if !value.IsValid() {
		return nil, ErrInvalidVote
	}
	return s.mutate(ctx, activityID, func(a *models.Activity) {
		a.CastVote(member.ID.String(), member.Name, value)
	})
}

func (s *ReactionService) RemoveVote(ctx context.Context, member *models.Member, activityID string) (*models.Activity, error) {
	return s.mutate(ctx, activityID, func(a *models.Activity) {
		a.RemoveVote(member.ID.String(), member.Name)
	})
}

func (s *ReactionService) mutate(ctx context.Context, activityID string, fn func(a *models.Activity)) (*models.Activity, error) {
	var out models.Activity
	_, err := s.store.Update(ctx, func(trip *models.Trip) error {
		a, err := findActivity(trip, activityID)
		if err != nil {
			return err
		}
		fn(a)
		out = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
