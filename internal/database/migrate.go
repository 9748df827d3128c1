package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// schemaMigrator is the part of *migrate.Migrate the Migrator drives.
type schemaMigrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

type Migrator struct {
	m schemaMigrator
}

var newSchemaMigrator = func(sourceURL, dsn string) (schemaMigrator, error) {
	return migrate.New(sourceURL, dsn)
}

// NewMigrator reads SQL migrations from dir and applies them to dsn.
func NewMigrator(dsn, dir string) (*Migrator, error) {
	m, err := newSchemaMigrator("file://"+dir, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening migrations: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	return nil
}

func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
