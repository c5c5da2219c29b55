package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps driver constraint errors onto the repository sentinels.
// Unique violations always mean a duplicate sku; fkErr is the sentinel to use
// for a foreign key violation in the calling context.
func translateError(err error, fkErr error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicateSKU
		case pgForeignKeyViolation:
			if fkErr != nil {
				return fkErr
			}
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique:
			return ErrDuplicateSKU
		case sqlite3.ErrConstraintForeignKey:
			if fkErr != nil {
				return fkErr
			}
		}
	}
	return err
}
