package validation

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"fitness-journal/internal/domain"
)

const dateFormatHint = "ISO 8601 date (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SSZ)"

// EntryValidator turns raw list queries and JSON bodies into typed entry requests.
type EntryValidator struct {
	validator *Validator
}

// NewEntryValidator creates a new entry validator
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{validator: NewValidator()}
}

// ParseListQuery builds ListOptions for userID from query parameters.
// Absent or empty parameters take their defaults; every invalid one is reported.
func (ev *EntryValidator) ParseListQuery(userID string, values url.Values) (domain.ListOptions, error) {
	opts := domain.DefaultListOptions(userID)
	ve := NewValidationError()

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			ve.AddInvalidFormatError("page", raw, "integer")
		case n < 1:
			ve.AddInvalidRangeError("page", n, "must be at least 1")
		default:
			opts.Page = n
		}
	}

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case err != nil:
			ve.AddInvalidFormatError("limit", raw, "integer")
		case n < 1 || n > domain.MaxLimit:
			ve.AddInvalidRangeError("limit", n, "must be between 1 and "+strconv.Itoa(domain.MaxLimit))
		default:
			opts.Limit = n
		}
	}

	if !domain.PageFits(opts.Page, opts.Limit) {
		ve.AddInvalidRangeError("page", opts.Page, "is too large for limit "+strconv.Itoa(opts.Limit))
	}

	if raw := values.Get("sortBy"); raw != "" {
		if f := domain.SortField(raw); f.IsValid() {
			opts.SortBy = f
		} else {
			ve.AddInvalidValueError("sortBy", raw, "must be one of date, workoutType, duration, createdAt")
		}
	}

	if raw := values.Get("sortOrder"); raw != "" {
		if o := domain.SortOrder(raw); o.IsValid() {
			opts.SortOrder = o
		} else {
			ve.AddInvalidValueError("sortOrder", raw, "must be asc or desc")
		}
	}

	if raw := values.Get("workoutType"); raw != "" {
		opts.WorkoutType = &raw
	}

	opts.DateFrom = ev.queryDate(values, "dateFrom", ve)
	opts.DateTo = ev.queryDate(values, "dateTo", ve)
	opts.MinDuration = ev.queryDuration(values, "minDuration", ve)
	opts.MaxDuration = ev.queryDuration(values, "maxDuration", ve)

	if ve.HasErrors() {
		return domain.ListOptions{}, ve
	}
	return opts, nil
}

func (ev *EntryValidator) queryDate(values url.Values, field string, ve *ValidationError) *time.Time {
	raw := values.Get(field)
	if raw == "" {
		return nil
	}
	t, ok := ev.validator.ParseDate(raw)
	if !ok {
		ve.AddInvalidFormatError(field, raw, dateFormatHint)
		return nil
	}
	return &t
}

func (ev *EntryValidator) queryDuration(values url.Values, field string, ve *ValidationError) *int {
	raw := values.Get(field)
	if raw == "" {
		return nil
	}
	n, ok := ev.validator.ParseNonNegativeInt(raw)
	if !ok {
		ve.AddInvalidValueError(field, raw, "must be a non-negative integer")
		return nil
	}
	return &n
}

// ParseCreateEntry validates a create body. date, workoutType and duration are
// required; notes may be a string, null or absent.
func (ev *EntryValidator) ParseCreateEntry(body []byte) (domain.CreateEntryInput, error) {
	ve := NewValidationError()
	obj, ok := decodeObject(body, ve)
	if !ok {
		return domain.CreateEntryInput{}, ve
	}

	var input domain.CreateEntryInput

	if !obj.has("date") || obj.isNull("date") {
		ve.AddRequiredError("date")
	} else if d, ok := ev.date(obj, ve); ok {
		input.Date = d
	}

	if !obj.has("workoutType") || obj.isNull("workoutType") {
		ve.AddRequiredError("workoutType")
	} else if w, ok := ev.workoutType(obj, ve); ok {
		input.WorkoutType = w
	}

	if !obj.has("duration") || obj.isNull("duration") {
		ve.AddRequiredError("duration")
	} else if d, ok := ev.duration(obj, ve); ok {
		input.Duration = d
	}

	if obj.has("notes") && !obj.isNull("notes") {
		if n, ok := ev.notes(obj, ve); ok {
			input.Notes = &n
		}
	}

	if ve.HasErrors() {
		return domain.CreateEntryInput{}, ve
	}
	return input, nil
}

// ParseUpdateEntry validates a partial update body. Present fields follow the
// create rules; notes: null clears the notes and an omitted notes keeps them.
func (ev *EntryValidator) ParseUpdateEntry(body []byte) (domain.UpdateEntryInput, error) {
	ve := NewValidationError()
	obj, ok := decodeObject(body, ve)
	if !ok {
		return domain.UpdateEntryInput{}, ve
	}

	var input domain.UpdateEntryInput

	for _, field := range []string{"date", "workoutType", "duration"} {
		if obj.isNull(field) {
			ve.AddInvalidValueError(field, nil, "must not be null")
		}
	}

	if obj.has("date") && !obj.isNull("date") {
		if d, ok := ev.date(obj, ve); ok {
			input.Date = &d
		}
	}

	if obj.has("workoutType") && !obj.isNull("workoutType") {
		if w, ok := ev.workoutType(obj, ve); ok {
			input.WorkoutType = &w
		}
	}

	if obj.has("duration") && !obj.isNull("duration") {
		if d, ok := ev.duration(obj, ve); ok {
			input.Duration = &d
		}
	}

	if obj.has("notes") {
		if obj.isNull("notes") {
			input.Notes = domain.NotesUpdate{Set: true}
		} else if n, ok := ev.notes(obj, ve); ok {
			input.Notes = domain.NotesUpdate{Set: true, Value: &n}
		}
	}

	if ve.HasErrors() {
		return domain.UpdateEntryInput{}, ve
	}
	return input, nil
}

func (ev *EntryValidator) date(obj object, ve *ValidationError) (time.Time, bool) {
	s, ok := obj.str("date", ve)
	if !ok {
		return time.Time{}, false
	}
	d, ok := ev.validator.ParseDate(s)
	if !ok {
		ve.AddInvalidFormatError("date", s, dateFormatHint)
		return time.Time{}, false
	}
	return d, true
}

func (ev *EntryValidator) workoutType(obj object, ve *ValidationError) (string, bool) {
	s, ok := obj.str("workoutType", ve)
	if !ok {
		return "", false
	}
	if !ev.validator.IsNonEmptyString(s) {
		ve.AddInvalidLengthError("workoutType", s, 1, 0)
		return "", false
	}
	if !ev.validator.IsValidStringLength(s, 1, domain.MaxWorkoutTypeLength) {
		ve.AddInvalidLengthError("workoutType", s, 1, domain.MaxWorkoutTypeLength)
		return "", false
	}
	return strings.TrimSpace(s), true
}

func (ev *EntryValidator) notes(obj object, ve *ValidationError) (string, bool) {
	s, ok := obj.str("notes", ve)
	if !ok {
		return "", false
	}
	if !ev.validator.IsValidStringLength(s, 0, domain.MaxNotesLength) {
		ve.AddInvalidLengthError("notes", s, 0, domain.MaxNotesLength)
		return "", false
	}
	return s, true
}

func (ev *EntryValidator) duration(obj object, ve *ValidationError) (int, bool) {
	d, ok := obj.integer("duration", ve)
	if !ok {
		return 0, false
	}
	if d <= 0 {
		ve.AddInvalidRangeError("duration", d, "must be a positive number of minutes")
		return 0, false
	}
	return d, true
}
