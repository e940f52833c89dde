package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// MigrationFiles holds the store_status, business_hours and store_timezone schema.
//
//go:embed *.sql
var MigrationFiles embed.FS

// RunMigrations brings the store schema up to the latest embedded version.
// With autoMigrate off it only reports which versions are pending.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	src, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		slog.Warn("[Migrations] Store schema is dirty, an earlier migration was interrupted",
			"version", current,
			"action", "forcing current version",
		)
		// Every migration is a single transactional script, so the version can be re-marked clean.
		if err := m.Force(int(current)); err != nil {
			return fmt.Errorf("failed to recover dirty migration state at version %d: %w", current, err)
		}
	}

	pending, err := Pending(src, current)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		slog.Info("[Migrations] Store schema is up to date", "version", current)
		return nil
	}

	if !autoMigrate {
		slog.Warn("[Migrations] Auto-migration disabled, store schema is behind",
			"current_version", current,
			"pending", pending,
		)
		return nil
	}

	slog.Info("[Migrations] Applying store schema migrations", "current_version", current, "pending", pending)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	applied, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get updated migration version: %w", err)
	}
	slog.Info("[Migrations] Store schema migrated", "from_version", current, "to_version", applied)
	return nil
}

// Pending lists the source versions newer than current, in order.
// A current of 0 means no migration has been applied yet.
func Pending(src source.Driver, current uint) ([]uint, error) {
	version, err := src.First()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read first migration: %w", err)
	}

	var pending []uint
	for {
		if version > current {
			pending = append(pending, version)
		}
		next, err := src.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			return pending, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read migration after %d: %w", version, err)
		}
		version = next
	}
}
