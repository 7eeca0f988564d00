package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultListOptions(t *testing.T) {
	opts := DefaultListOptions("user-1")

	assert.Equal(t, "user-1", opts.UserID)
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, SortByDate, opts.SortBy)
	assert.Equal(t, SortDesc, opts.SortOrder)
}

func TestSortFieldAndOrder_IsValid(t *testing.T) {
	for _, f := range []SortField{SortByDate, SortByWorkoutType, SortByDuration, SortByCreatedAt} {
		assert.True(t, f.IsValid(), string(f))
	}
	assert.False(t, SortField("notes").IsValid())
	assert.False(t, SortField("Date").IsValid())

	assert.True(t, SortAsc.IsValid())
	assert.True(t, SortDesc.IsValid())
	assert.False(t, SortOrder("up").IsValid())
}

func TestListOptions_Matches(t *testing.T) {
	jan15 := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	entry := Entry{UserID: "user-1", WorkoutType: "Morning Run", Duration: 30, Date: jan15}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	exact := jan15

	tests := []struct {
		name     string
		mutate   func(o *ListOptions)
		expected bool
	}{
		{"no filters", func(o *ListOptions) {}, true},
		{"other owner", func(o *ListOptions) { o.UserID = "user-2" }, false},
		{"case-insensitive substring", func(o *ListOptions) { o.WorkoutType = strPtr("run") }, true},
		{"non-matching type", func(o *ListOptions) { o.WorkoutType = strPtr("swim") }, false},
		{"inside date range", func(o *ListOptions) { o.DateFrom = &from; o.DateTo = &to }, true},
		{"date bounds are inclusive", func(o *ListOptions) { o.DateFrom = &exact; o.DateTo = &exact }, true},
		{"before range", func(o *ListOptions) { o.DateFrom = &to }, false},
		{"after range", func(o *ListOptions) { o.DateTo = &from }, false},
		{"duration bounds inclusive", func(o *ListOptions) { o.MinDuration = intPtr(30); o.MaxDuration = intPtr(30) }, true},
		{"too short", func(o *ListOptions) { o.MinDuration = intPtr(31) }, false},
		{"too long", func(o *ListOptions) { o.MaxDuration = intPtr(29) }, false},
		{"all filters together", func(o *ListOptions) {
			o.WorkoutType = strPtr("RUN")
			o.DateFrom = &from
			o.DateTo = &to
			o.MinDuration = intPtr(0)
			o.MaxDuration = intPtr(60)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultListOptions("user-1")
			tt.mutate(&opts)
			assert.Equal(t, tt.expected, opts.Matches(entry))
		})
	}
}

func TestListOptions_SortEntries(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ID: "c", Date: base, Duration: 30, WorkoutType: "Yoga"},
		{ID: "a", Date: base.AddDate(0, 0, 2), Duration: 30, WorkoutType: "Cycling"},
		{ID: "b", Date: base.AddDate(0, 0, 1), Duration: 10, WorkoutType: "Running"},
	}

	ids := func(es []Entry) []string {
		out := make([]string, len(es))
		for i, e := range es {
			out[i] = e.ID
		}
		return out
	}

	opts := DefaultListOptions("u")
	opts.SortEntries(entries)
	assert.Equal(t, []string{"a", "b", "c"}, ids(entries))

	opts.SortBy, opts.SortOrder = SortByDuration, SortAsc
	opts.SortEntries(entries)
	assert.Equal(t, []string{"b", "a", "c"}, ids(entries), "ties fall back to id ascending")

	opts.SortBy, opts.SortOrder = SortByWorkoutType, SortAsc
	opts.SortEntries(entries)
	assert.Equal(t, []string{"a", "b", "c"}, ids(entries))
}
