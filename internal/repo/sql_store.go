package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// SQLStore implements Store on top of a PostgreSQL (pgx) or SQLite database.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// WithTx executes fn inside a read-committed transaction. Rollback after a
// successful commit is a no-op.
func (s *SQLStore) WithTx(ctx context.Context, fn func(UnitOfWork) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("repo: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&sqlUnitOfWork{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo: commit tx: %w", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

type sqlUnitOfWork struct {
	tx *sqlx.Tx
}

func (u *sqlUnitOfWork) Products() ProductRepository {
	return &SQLProductRepository{tx: u.tx}
}

func (u *sqlUnitOfWork) Restocks() RestockRepository {
	return &SQLRestockRepository{tx: u.tx}
}

func isPostgres(tx *sqlx.Tx) bool {
	return sqlx.BindType(tx.DriverName()) == sqlx.DOLLAR
}
