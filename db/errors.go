package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrConflict is returned when a statement violates a unique constraint.
	ErrConflict = errors.New("unique constraint violation")
	// ErrEngine wraps every other failure reported by the engine.
	ErrEngine = errors.New("database engine error")
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// QueryError carries the engine and the driver error. It matches ErrConflict
// or ErrEngine with errors.Is.
type QueryError struct {
	Engine Engine
	Kind   error
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Engine, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// translate maps a driver error onto the adapter's error vocabulary.
func translate(engine Engine, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &QueryError{Engine: engine, Kind: ErrEngine, Err: err}
	}
	kind := ErrEngine
	if isUniqueViolation(err) {
		kind = ErrConflict
	}
	return &QueryError{Engine: engine, Kind: kind, Err: err}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
