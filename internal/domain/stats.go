package domain

import (
	"sort"
	"time"
)

// Stats are aggregate figures derived from a user's entries.
type Stats struct {
	ThisWeekSessions        int `json:"thisWeekSessions"`
	TotalDurationMinutes    int `json:"totalDurationMinutes"`
	ThisWeekDurationMinutes int `json:"thisWeekDurationMinutes"`
	StreakDays              int `json:"streakDays"`
}

// CalculateStats derives Stats from entries relative to now. Calendar days and
// the week start (Sunday, 00:00) are taken in now's location.
func CalculateStats(entries []Entry, now time.Time) Stats {
	loc := now.Location()
	today := StartOfDay(now)
	startOfWeek := today.AddDate(0, 0, -int(now.Weekday()))

	var stats Stats
	for _, entry := range entries {
		stats.TotalDurationMinutes += entry.Duration
		if !entry.Date.Before(startOfWeek) {
			stats.ThisWeekSessions++
			stats.ThisWeekDurationMinutes += entry.Duration
		}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	// The i-th entry is compared with today-i, so two entries on the same day
	// consume two positions.
	for i, entry := range sorted {
		expected := today.AddDate(0, 0, -i)
		if !StartOfDay(entry.Date.In(loc)).Equal(expected) {
			break
		}
		stats.StreakDays++
	}

	return stats
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
