package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/frahmantamala/visitor-management/internal"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

const migrationTable = "schema_migrations"

// Migrate applies all pending migrations for the configured driver.
func Migrate(ctx context.Context, db *DB) error {
	dir, err := prepareGoose(db.Driver)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.Std(), dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(ctx context.Context, db *DB) error {
	dir, err := prepareGoose(db.Driver)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db.Std(), dir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

func prepareGoose(driver string) (string, error) {
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(migrationTable)
	goose.SetLogger(goose.NopLogger())

	dialect := "sqlite3"
	dir := "migrations/sqlite"
	if driver == internal.DriverPostgres {
		dialect = "postgres"
		dir = "migrations/postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("goose dialect: %w", err)
	}
	return dir, nil
}
