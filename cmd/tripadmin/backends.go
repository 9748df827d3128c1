package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/tripboard/internal/config"
	"github.com/HammerMeetNail/tripboard/internal/database"
	"github.com/HammerMeetNail/tripboard/internal/models"
	"github.com/HammerMeetNail/tripboard/internal/services"
)

type tripAdmin interface {
	GetTrip(ctx context.Context) (*models.Trip, error)
	MigrateLegacyReactions(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

type memberAdmin interface {
	List(ctx context.Context) ([]models.Member, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type schemaAdmin interface {
	Up() error
	Down() error
	Version() (uint, bool, error)
	Close() error
}

// backends opens the stores a command needs. Each opener returns a close
// func the command must call.
type backends struct {
	trip     func(ctx context.Context) (tripAdmin, func(), error)
	members  func(ctx context.Context) (memberAdmin, func(), error)
	migrator func() (schemaAdmin, error)
}

func defaultBackends() *backends {
	return &backends{
		trip: func(ctx context.Context) (tripAdmin, func(), error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, nil, fmt.Errorf("loading config: %w", err)
			}
			redisDB, err := database.NewRedisDB(ctx, cfg.Redis)
			if err != nil {
				return nil, nil, fmt.Errorf("connecting to redis: %w", err)
			}
			store := services.NewTripStore(services.NewRedisKV(redisDB.Client), cfg.Trip.Key, services.TripSeed{
				Name:      cfg.Trip.Name,
				StartDate: cfg.Trip.StartDate,
				EndDate:   cfg.Trip.EndDate,
				Locale:    cfg.Trip.Locale,
			})
			return services.NewTripService(store), func() { _ = redisDB.Close() }, nil
		},
		members: func(ctx context.Context) (memberAdmin, func(), error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, nil, fmt.Errorf("loading config: %w", err)
			}
			db, err := database.NewPostgresDB(ctx, cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
			}
			return services.NewMemberService(db.Pool), db.Close, nil
		},
		migrator: func() (schemaAdmin, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, fmt.Errorf("loading config: %w", err)
			}
			m, err := database.NewMigrator(cfg.Database.DSN(), cfg.Database.MigrationsPath)
			if err != nil {
				return nil, fmt.Errorf("creating migrator: %w", err)
			}
			return m, nil
		},
	}
}
