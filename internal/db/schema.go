package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          SERIAL PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		sku         VARCHAR(50) NOT NULL UNIQUE,
		stock_level INTEGER NOT NULL DEFAULT 0,
		category    VARCHAR(50),
		price       DOUBLE PRECISION,
		cost        DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS restock_logs (
		id          SERIAL PRIMARY KEY,
		product_id  INTEGER NOT NULL REFERENCES products(id),
		quantity    INTEGER NOT NULL,
		"timestamp" TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS restock_logs_timestamp_idx ON restock_logs ("timestamp")`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		sku         TEXT NOT NULL UNIQUE,
		stock_level INTEGER NOT NULL DEFAULT 0,
		category    TEXT,
		price       REAL,
		cost        REAL
	)`,
	`CREATE TABLE IF NOT EXISTS restock_logs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id  INTEGER NOT NULL REFERENCES products(id),
		quantity    INTEGER NOT NULL,
		"timestamp" DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS restock_logs_timestamp_idx ON restock_logs ("timestamp")`,
}

// EnsureSchema creates the tables when they do not exist yet. Existing tables
// are left untouched.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := postgresSchema
	if db.DriverName() == DriverSQLite {
		statements = sqliteSchema
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			return fmt.Errorf("db: enable foreign keys: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db: ensure schema: %w", err)
		}
	}
	return nil
}
