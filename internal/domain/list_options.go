package domain

import (
	"sort"
	"strings"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortField names a sortable entry attribute.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByWorkoutType SortField = "workoutType"
	SortByDuration    SortField = "duration"
	SortByCreatedAt   SortField = "createdAt"
)

// IsValid reports whether f is one of the known sort fields.
func (f SortField) IsValid() bool {
	switch f {
	case SortByDate, SortByWorkoutType, SortByDuration, SortByCreatedAt:
		return true
	}
	return false
}

// SortOrder is the direction of a listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid reports whether o is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// ListOptions describes one entry listing: ownership, filters, sort and page window.
// Nil filter fields are absent and contribute nothing.
type ListOptions struct {
	UserID      string
	Page        int
	Limit       int
	SortBy      SortField
	SortOrder   SortOrder
	WorkoutType *string
	DateFrom    *time.Time
	DateTo      *time.Time
	MinDuration *int
	MaxDuration *int
}

// DefaultListOptions returns the options used when a caller supplies nothing.
func DefaultListOptions(userID string) ListOptions {
	return ListOptions{
		UserID:    userID,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

// Skip returns the number of matching entries before this page.
func (o ListOptions) Skip() int {
	return Skip(o.Page, o.Limit)
}

// Matches reports whether entry satisfies every present filter, ownership included.
func (o ListOptions) Matches(entry Entry) bool {
	if entry.UserID != o.UserID {
		return false
	}
	if o.WorkoutType != nil && !strings.Contains(strings.ToLower(entry.WorkoutType), strings.ToLower(*o.WorkoutType)) {
		return false
	}
	if o.DateFrom != nil && entry.Date.Before(*o.DateFrom) {
		return false
	}
	if o.DateTo != nil && entry.Date.After(*o.DateTo) {
		return false
	}
	if o.MinDuration != nil && entry.Duration < *o.MinDuration {
		return false
	}
	if o.MaxDuration != nil && entry.Duration > *o.MaxDuration {
		return false
	}
	return true
}

// SortEntries orders entries in place by SortBy/SortOrder, breaking ties by id
// ascending the same way the store does.
func (o ListOptions) SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		c := compareEntries(entries[i], entries[j], o.SortBy)
		if c == 0 {
			return entries[i].ID < entries[j].ID
		}
		if o.SortOrder == SortAsc {
			return c < 0
		}
		return c > 0
	})
}

func compareEntries(a, b Entry, field SortField) int {
	switch field {
	case SortByWorkoutType:
		return strings.Compare(a.WorkoutType, b.WorkoutType)
	case SortByDuration:
		return a.Duration - b.Duration
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return a.Date.Compare(b.Date)
	}
}
