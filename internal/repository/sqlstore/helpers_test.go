package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fitness-journal/internal/domain"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, email string) *domain.User {
	t.Helper()
	user, err := NewUserRepository(db).Create(context.Background(), domain.NewUser(email, "Test User", "hash"))
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
