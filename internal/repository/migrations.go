package repository

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded schema migrations
func RunMigrations(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	// A failed migration leaves the schema dirty; step back to the last
	// clean version and retry once.
	var dirtyErr migrate.ErrDirty
	if !errors.As(err, &dirtyErr) {
		return fmt.Errorf("run migrations: %w", err)
	}

	forceVersion := cleanVersion(dirtyErr.Version)
	if ferr := m.Force(forceVersion); ferr != nil {
		return fmt.Errorf("force clean migration version %d: %w", forceVersion, ferr)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rerun migrations after dirty state: %w", err)
	}

	return nil
}

// cleanVersion is the version to force after a dirty one. Below the first
// migration the schema has no version at all.
func cleanVersion(dirty int) int {
	if dirty <= 1 {
		return database.NilVersion
	}
	return dirty - 1
}
