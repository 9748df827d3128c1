package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/HammerMeetNail/tripboard/internal/logging"
	"github.com/HammerMeetNail/tripboard/internal/models"
)

// TripSeed describes the trip written on first read of an empty store.
type TripSeed struct {
	Name      string
	StartDate string
	EndDate   string
	Locale    string
}

// TripStore keeps the whole trip as one JSON snapshot under a single key.
// Writers race under last-write-wins.
type TripStore struct {
	kv   KVStore
	key  string
	seed TripSeed
}

func NewTripStore(kv KVStore, key string, seed TripSeed) *TripStore {
	return &TripStore{kv: kv, key: key, seed: seed}
}

func (s *TripStore) Key() string {
	return s.key
}

// Load returns the stored trip, seeding and persisting the default trip when
// the key is empty.
func (s *TripStore) Load(ctx context.Context) (*models.Trip, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrKeyNotFound) {
		trip, err := models.NewTrip(s.seed.Name, s.seed.StartDate, s.seed.EndDate, s.seed.Locale)
		if err != nil {
			return nil, fmt.Errorf("building seed trip: %w", err)
		}
		if err := s.Save(ctx, trip); err != nil {
			return nil, err
		}
		logging.Info("Seeded trip snapshot", map[string]interface{}{"key": s.key, "days": len(trip.Days)})
		return trip, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading trip: %w", err)
	}

	var trip models.Trip
	if err := json.Unmarshal([]byte(raw), &trip); err != nil {
		return nil, fmt.Errorf("decoding trip: %w", err)
	}
	trip.Normalize()
	return &trip, nil
}

func (s *TripStore) Save(ctx context.Context, trip *models.Trip) error {
	trip.Normalize()
	data, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encoding trip: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data), 0); err != nil {
		return fmt.Errorf("saving trip: %w", err)
	}
	return nil
}

// Update loads the snapshot, applies fn and writes the result back. Nothing is
// written when fn fails.
func (s *TripStore) Update(ctx context.Context, fn func(trip *models.Trip) error) (*models.Trip, error) {
	trip, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(trip); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// Reset deletes the snapshot; the next Load reseeds it.
func (s *TripStore) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("resetting trip: %w", err)
	}
	return nil
}
