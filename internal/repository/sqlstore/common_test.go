package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"fitness-journal/internal/errors"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	rowsErr      error
}

func (mr *mockResult) LastInsertId() (int64, error) { return 0, nil }
func (mr *mockResult) RowsAffected() (int64, error) { return mr.rowsAffected, mr.rowsErr }

func TestHandleDatabaseError(t *testing.T) {
	result := HandleDatabaseError("list entries", stderrors.New("connection refused"))
	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeDatabase))
	assert.Contains(t, result.Error(), "list entries")
	assert.Contains(t, result.Error(), "connection refused")

	result = HandleDatabaseError("list entries", fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeTimeout))
}

func TestStoreFailuresCarryIdentifier(t *testing.T) {
	err := ValidateRowsAffected(&mockResult{rowsErr: stderrors.New("boom")}, "entry", "abc")
	appErr, ok := errors.AsAppError(err)
	assert.True(t, ok)
	identifier, ok := appErr.GetContext("identifier")
	assert.True(t, ok)
	assert.Equal(t, "abc", identifier)
	operation, _ := appErr.GetContext("operation")
	assert.Equal(t, "get rows affected", operation)
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name     string
		result   sql.Result
		wantType *errors.ErrorType
	}{
		{"one row", &mockResult{rowsAffected: 1}, nil},
		{"no rows", &mockResult{rowsAffected: 0}, typePtr(errors.ErrorTypeNotFound)},
		{"driver error", &mockResult{rowsErr: stderrors.New("boom")}, typePtr(errors.ErrorTypeDatabase)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result, "entry", "abc")
			if tt.wantType == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsErrorType(err, *tt.wantType), "got %v", err)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isUniqueViolation(stderrors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
	assert.False(t, isUniqueViolation(stderrors.New("disk I/O error")))
}

func typePtr(t errors.ErrorType) *errors.ErrorType { return &t }
