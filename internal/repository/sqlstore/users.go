package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitness-journal/internal/domain"
	"fitness-journal/internal/errors"
	"fitness-journal/internal/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

const userColumns = "id, email, name, password_hash, created_at, updated_at"

// UserRepository implements repository.UserRepository.
type UserRepository struct {
	db  *DB
	now func() time.Time
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

// Create inserts a new user. A taken email is a conflict.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	now := NewTimestamp(r.now())
	row := userRow{
		ID:           uuid.NewString(),
		Email:        domain.NormalizeEmail(user.Email),
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
	INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		row.ID, row.Email, row.Name, row.PasswordHash, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.NewConflictError("user", "User with this email already exists")
		}
		return nil, HandleDatabaseError("create user", err)
	}

	created := row.toDomain()
	return &created, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	row, err := QuerySingle[userRow](ctx, r.db, query, "user", id, id)
	if err != nil {
		return nil, err
	}
	user := row.toDomain()
	return &user, nil
}

// GetByEmail retrieves a user by normalised email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	row, err := QuerySingle[userRow](ctx, r.db, query, "user", email, email)
	if err != nil {
		return nil, err
	}
	user := row.toDomain()
	return &user, nil
}
