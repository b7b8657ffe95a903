package repository

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type MigrationStatus struct {
	CurrentVersion uint `json:"current_version"`
	LatestVersion  uint `json:"latest_version"`
	Dirty          bool `json:"dirty"`
	Pending        bool `json:"pending"`
}

func (r *PostgresRepo) migrator() (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(r.DB, &postgres.Config{})
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

// RunMigrations applies all pending migrations.
func (r *PostgresRepo) RunMigrations() error {
	m, err := r.migrator()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// RollbackMigration reverts the most recent migration.
func (r *PostgresRepo) RollbackMigration() error {
	m, err := r.migrator()
	if err != nil {
		return err
	}
	return m.Steps(-1)
}

func (r *PostgresRepo) MigrationStatus() (*MigrationStatus, error) {
	m, err := r.migrator()
	if err != nil {
		return nil, err
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, err
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	var latest uint
	if first, err := source.First(); err == nil {
		latest = first
		for {
			next, err := source.Next(latest)
			if err != nil {
				break
			}
			latest = next
		}
	}

	return &MigrationStatus{
		CurrentVersion: version,
		LatestVersion:  latest,
		Dirty:          dirty,
		Pending:        version < latest,
	}, nil
}
