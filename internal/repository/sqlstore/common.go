package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"fitness-journal/internal/errors"
)

// HandleDatabaseError converts database errors to structured app errors.
// Context cancellation and deadlines become timeout errors.
func HandleDatabaseError(operation string, err error) *errors.AppError {
	if errors.IsDeadline(err) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

// ValidateRowsAffected checks if a database operation affected any row
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("get rows affected", err).WithContext("identifier", id)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// ExecuteWithRowsAffected executes a statement and reports not-found when it touched nothing
func ExecuteWithRowsAffected(ctx context.Context, db sqlx.ExtContext, query string, entityType string, id string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return HandleDatabaseError("execute "+entityType, err).WithContext("identifier", id)
	}
	return ValidateRowsAffected(result, entityType, id)
}

// QuerySingle runs a query expected to return one row and scans it into T
func QuerySingle[T any](ctx context.Context, db sqlx.ExtContext, query string, entityType string, id string, args ...interface{}) (*T, error) {
	var dest T
	if err := sqlx.GetContext(ctx, db, &dest, db.Rebind(query), args...); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, HandleDatabaseError("query "+entityType, err).WithContext("identifier", id)
	}
	return &dest, nil
}

// QueryMultiple runs a query and scans every row into T
func QueryMultiple[T any](ctx context.Context, db sqlx.ExtContext, query string, entityType string, args ...interface{}) ([]T, error) {
	var dest []T
	if err := sqlx.SelectContext(ctx, db, &dest, db.Rebind(query), args...); err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	return dest, nil
}

// isUniqueViolation reports whether err is a unique constraint failure on either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if stderrors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
