package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrRecordNotFound is returned when a query matches nothing.
	ErrRecordNotFound = sql.ErrNoRows

	// ErrDuplicateKey is returned when an insert or update breaks a
	// unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates table constraint")
)

// WrapError folds driver-specific failures into the package's sentinel
// errors so callers never have to switch on driver types.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return ErrDuplicateKey
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrDuplicateKey
	}

	return err
}
