package sqlstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitness-journal/internal/domain"
	"fitness-journal/internal/repository"
)

var _ repository.EntryRepository = (*EntryRepository)(nil)

// EntryRepository implements repository.EntryRepository.
type EntryRepository struct {
	db  *DB
	now func() time.Time
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db, now: time.Now}
}

// Create stores a new entry. The id and timestamps are assigned here.
func (r *EntryRepository) Create(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	now := NewTimestamp(r.now())
	row := entryRow{
		ID:          uuid.NewString(),
		UserID:      entry.UserID,
		Date:        NewTimestamp(entry.Date),
		WorkoutType: entry.WorkoutType,
		Duration:    entry.Duration,
		Notes:       nullString(entry.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
	INSERT INTO entries (id, user_id, date, workout_type, duration, notes, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		row.ID, row.UserID, row.Date, row.WorkoutType, row.Duration, row.Notes, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return nil, HandleDatabaseError("create entry", err)
	}

	created := row.toDomain()
	return &created, nil
}

// Get returns the entry with id if userID owns it.
func (r *EntryRepository) Get(ctx context.Context, userID, id string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ? AND user_id = ?`

	row, err := QuerySingle[entryRow](ctx, r.db, query, "entry", id, id, userID)
	if err != nil {
		return nil, err
	}
	entry := row.toDomain()
	return &entry, nil
}

// List returns one page of the user's entries matching opts.
func (r *EntryRepository) List(ctx context.Context, opts domain.ListOptions) ([]domain.Entry, error) {
	q := BuildEntryQuery(opts)

	rows, err := QueryMultiple[entryRow](ctx, r.db, q.SelectSQL(), "entries", q.SelectArgs()...)
	if err != nil {
		return nil, err
	}
	return entriesToDomain(rows), nil
}

// Count returns how many of the user's entries match opts, ignoring paging.
func (r *EntryRepository) Count(ctx context.Context, opts domain.ListOptions) (int, error) {
	q := BuildEntryQuery(opts)

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(q.CountSQL()), q.Args...); err != nil {
		return 0, HandleDatabaseError("count entries", err)
	}
	return total, nil
}

// ListAll returns every entry of the user, newest first.
func (r *EntryRepository) ListAll(ctx context.Context, userID string) ([]domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = ? ORDER BY date DESC, id ASC`

	rows, err := QueryMultiple[entryRow](ctx, r.db, query, "entries", userID)
	if err != nil {
		return nil, err
	}
	return entriesToDomain(rows), nil
}

// Update applies the present fields of update in a single statement guarded
// by ownership. A missing or foreign entry is reported as not found.
func (r *EntryRepository) Update(ctx context.Context, userID, id string, update domain.UpdateEntryInput) (*domain.Entry, error) {
	var sets []string
	var args []interface{}

	if update.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, NewTimestamp(*update.Date))
	}
	if update.WorkoutType != nil {
		sets = append(sets, "workout_type = ?")
		args = append(args, strings.TrimSpace(*update.WorkoutType))
	}
	if update.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *update.Duration)
	}
	if update.Notes.Set {
		sets = append(sets, "notes = ?")
		args = append(args, nullString(update.Notes.Value))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, NewTimestamp(r.now()), id, userID)

	query := `UPDATE entries SET ` + strings.Join(sets, ", ") +
		` WHERE id = ? AND user_id = ? RETURNING ` + entryColumns

	row, err := QuerySingle[entryRow](ctx, r.db, query, "entry", id, args...)
	if err != nil {
		return nil, err
	}
	entry := row.toDomain()
	return &entry, nil
}

// Delete removes the entry if userID owns it.
func (r *EntryRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM entries WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "entry", id, id, userID)
}
