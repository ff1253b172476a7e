package database

import (
	"context"

	"github.com/frahmantamala/visitor-management/internal"
)

// OpenMemory opens a migrated, private in-memory SQLite database.
func OpenMemory(ctx context.Context) (*DB, error) {
	db, err := Open(ctx, internal.DatabaseConfig{
		Driver:       internal.DriverSQLite,
		Source:       ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
