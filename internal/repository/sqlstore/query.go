package sqlstore

import (
	"fmt"
	"strings"

	"fitness-journal/internal/domain"
)

const entryColumns = "id, user_id, date, workout_type, duration, notes, created_at, updated_at"

var sortColumns = map[domain.SortField]string{
	domain.SortByDate:        "date",
	domain.SortByWorkoutType: "workout_type",
	domain.SortByDuration:    "duration",
	domain.SortByCreatedAt:   "created_at",
}

// EntryQuery is the SQL rendition of a list request. Placeholders are written
// as ? and rebound per driver by the caller.
type EntryQuery struct {
	Where   string
	Args    []interface{}
	OrderBy string
	Limit   int
	Offset  int
}

// BuildEntryQuery translates validated list options into a WHERE clause,
// ORDER BY clause and page window. Ties on the sort column are broken by id so
// repeated queries return the same order.
func BuildEntryQuery(opts domain.ListOptions) EntryQuery {
	conditions := []string{"user_id = ?"}
	args := []interface{}{opts.UserID}

	if opts.WorkoutType != nil {
		conditions = append(conditions, `LOWER(workout_type) LIKE LOWER(?) ESCAPE '\'`)
		args = append(args, "%"+escapeLike(*opts.WorkoutType)+"%")
	}
	if opts.DateFrom != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, NewTimestamp(*opts.DateFrom))
	}
	if opts.DateTo != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, NewTimestamp(*opts.DateTo))
	}
	if opts.MinDuration != nil {
		conditions = append(conditions, "duration >= ?")
		args = append(args, *opts.MinDuration)
	}
	if opts.MaxDuration != nil {
		conditions = append(conditions, "duration <= ?")
		args = append(args, *opts.MaxDuration)
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = sortColumns[domain.SortByDate]
	}
	direction := "DESC"
	if opts.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	return EntryQuery{
		Where:   strings.Join(conditions, " AND "),
		Args:    args,
		OrderBy: fmt.Sprintf("%s %s, id ASC", column, direction),
		Limit:   opts.Limit,
		Offset:  opts.Skip(),
	}
}

// SelectSQL returns the page query.
func (q EntryQuery) SelectSQL() string {
	return fmt.Sprintf("SELECT %s FROM entries WHERE %s ORDER BY %s LIMIT ? OFFSET ?", entryColumns, q.Where, q.OrderBy)
}

// SelectArgs returns the arguments for SelectSQL.
func (q EntryQuery) SelectArgs() []interface{} {
	args := make([]interface{}, 0, len(q.Args)+2)
	args = append(args, q.Args...)
	return append(args, q.Limit, q.Offset)
}

// CountSQL returns the query counting every match, ignoring the page window.
func (q EntryQuery) CountSQL() string {
	return "SELECT COUNT(*) FROM entries WHERE " + q.Where
}

// escapeLike makes %, _ and \ in s match literally under ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
