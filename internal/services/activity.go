package services

import (
	"context"
	"strings"
	"time"

	"github.com/HammerMeetNail/tripboard/internal/models"
)

type ActivityService struct {
	store *TripStore
	now   func() time.Time
}

func NewActivityService(store *TripStore) *ActivityService {
	return &ActivityService{store: store, now: time.Now}
}

func (s *ActivityService) List(ctx context.Context) ([]models.Activity, error) {
	trip, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return trip.Activities, nil
}

// Create appends a new activity and returns it along with the full list.
func (s *ActivityService) Create(ctx context.Context, creator *models.Member, params models.CreateActivityParams) (*models.Activity, []models.Activity, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	params.Day = strings.TrimSpace(params.Day)
	if params.Day == "" {
		return nil, nil, ErrDayRequired
	}

	var created models.Activity
	trip, err := s.store.Update(ctx, func(trip *models.Trip) error {
		if !trip.HasDay(params.Day) {
			return ErrInvalidDay
		}
		created = *models.NewActivity(params, creator, s.now())
		trip.Activities = append(trip.Activities, created)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &created, trip.Activities, nil
}

// Update applies patch to an activity owned by member.
func (s *ActivityService) Update(ctx context.Context, member *models.Member, id string, patch models.ActivityPatch) (*models.Activity, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated models.Activity
	_, err := s.store.Update(ctx, func(trip *models.Trip) error {
		a, err := findActivity(trip, id)
		if err != nil {
			return err
		}
		if !member.Owns(a.CreatorID, a.CreatorName) {
			return ErrNotCreator
		}
		if patch.Day != nil && !trip.HasDay(*patch.Day) {
			return ErrInvalidDay
		}
		patch.Apply(a)
		updated = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ActivityService) Delete(ctx context.Context, member *models.Member, id string) error {
	_, err := s.store.Update(ctx, func(trip *models.Trip) error {
		a, err := findActivity(trip, id)
		if err != nil {
			return err
		}
		if !member.Owns(a.CreatorID, a.CreatorName) {
			return ErrNotCreator
		}
		trip.RemoveActivity(id)
		return nil
	})
	return err
}
