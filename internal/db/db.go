package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Connect opens and pings a database for one of the supported drivers.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("db: empty connection string for driver %q", driver)
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("db: unsupported driver %q", driver)
	}

	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection keeps an in-memory database alive and makes every
		// transaction exclusive.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// sqliteDSN turns on foreign key enforcement for every connection the pool
// opens, unless the DSN already sets it.
func sqliteDSN(dsn string) string {
	query := ""
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		query = dsn[i+1:]
	}
	for _, opt := range strings.Split(query, "&") {
		key, _, _ := strings.Cut(opt, "=")
		if key == "_foreign_keys" || key == "_fk" {
			return dsn
		}
	}
	switch {
	case !strings.Contains(dsn, "?"):
		return dsn + "?_foreign_keys=1"
	case strings.HasSuffix(dsn, "?"), strings.HasSuffix(dsn, "&"):
		return dsn + "_foreign_keys=1"
	}
	return dsn + "&_foreign_keys=1"
}
