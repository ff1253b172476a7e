package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/visitor-management/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB bundles the two access layers over one connection pool: sqlx for hand-written
// queries and gorm for model-mapped tables.
type DB struct {
	SQL    *sqlx.DB
	Gorm   *gorm.DB
	Driver string
}

// Open connects, applies pool limits and verifies the connection.
func Open(ctx context.Context, cfg internal.DatabaseConfig) (*DB, error) {
	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dbConn, err := sqlx.Open(driverName, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	if cfg.Driver == internal.DriverSQLite {
		// one connection serializes writers and keeps :memory: databases alive
		dbConn.SetMaxOpenConns(1)
		dbConn.SetMaxIdleConns(1)
		dbConn.SetConnMaxLifetime(0)
	} else {
		dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
		dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := dbConn.PingContext(pingCtx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(dialector(cfg.Driver, dbConn.DB), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &DB{SQL: dbConn, Gorm: gormDB, Driver: cfg.Driver}, nil
}

// Close releases the shared pool.
func (d *DB) Close() error {
	return d.SQL.Close()
}

// Std exposes the underlying pool for health checks and migrations.
func (d *DB) Std() *sql.DB {
	return d.SQL.DB
}

func sqlDriverName(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case internal.DriverSQLite, "sqlite3":
		return sqlite.DriverName, nil
	case internal.DriverPostgres, "pgx":
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func dialector(driver string, conn *sql.DB) gorm.Dialector {
	if driver == internal.DriverPostgres {
		return postgres.New(postgres.Config{Conn: conn})
	}
	return &sqlite.Dialector{DriverName: sqlite.DriverName, Conn: conn}
}
