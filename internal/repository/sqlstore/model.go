package sqlstore

import (
	"database/sql"

	"fitness-journal/internal/domain"
)

type entryRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Date        Timestamp      `db:"date"`
	WorkoutType string         `db:"workout_type"`
	Duration    int            `db:"duration"`
	Notes       sql.NullString `db:"notes"`
	CreatedAt   Timestamp      `db:"created_at"`
	UpdatedAt   Timestamp      `db:"updated_at"`
}

func (r entryRow) toDomain() domain.Entry {
	entry := domain.Entry{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date.Time,
		WorkoutType: r.WorkoutType,
		Duration:    r.Duration,
		CreatedAt:   r.CreatedAt.Time,
		UpdatedAt:   r.UpdatedAt.Time,
	}
	if r.Notes.Valid {
		notes := r.Notes.String
		entry.Notes = &notes
	}
	return entry
}

func entriesToDomain(rows []entryRow) []domain.Entry {
	entries := make([]domain.Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.toDomain()
	}
	return entries
}

type userRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    Timestamp `db:"created_at"`
	UpdatedAt    Timestamp `db:"updated_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
