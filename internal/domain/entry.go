package domain

import (
	"strings"
	"time"
)

// Length limits on free text, counted in characters after trimming.
const (
	MaxWorkoutTypeLength = 100
	MaxNotesLength       = 2000
)

// Entry represents a single logged workout.
// This is a pure domain model without database-specific concerns.
type Entry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	WorkoutType string    `json:"workoutType"`
	Duration    int       `json:"duration"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewEntry creates a new Entry owned by userID from validated input.
func NewEntry(userID string, input CreateEntryInput) Entry {
	return Entry{
		UserID:      userID,
		Date:        input.Date,
		WorkoutType: strings.TrimSpace(input.WorkoutType),
		Duration:    input.Duration,
		Notes:       input.Notes,
	}
}

// IsValid checks if the entry has valid data.
func (e Entry) IsValid() bool {
	if e.UserID == "" {
		return false
	}
	if e.Date.IsZero() {
		return false
	}
	if strings.TrimSpace(e.WorkoutType) == "" {
		return false
	}
	return e.Duration > 0
}

// CreateEntryInput is a validated create payload.
type CreateEntryInput struct {
	Date        time.Time
	WorkoutType string
	Duration    int
	Notes       *string
}

// NotesUpdate distinguishes an omitted notes field (Set == false) from an
// explicit null (Set == true, Value == nil) or a new value.
type NotesUpdate struct {
	Set   bool
	Value *string
}

// UpdateEntryInput is a validated partial update payload. Nil fields are left unchanged.
type UpdateEntryInput struct {
	Date        *time.Time
	WorkoutType *string
	Duration    *int
	Notes       NotesUpdate
}

// IsEmpty reports whether the update carries no field at all.
func (u UpdateEntryInput) IsEmpty() bool {
	return u.Date == nil && u.WorkoutType == nil && u.Duration == nil && !u.Notes.Set
}

// EntryPage is one page of a filtered, sorted entry listing.
type EntryPage struct {
	Entries    []Entry    `json:"entries"`
	Pagination Pagination `json:"pagination"`
}
