package util

import (
	"database/sql"
	"time"
)

// StringToNullString maps "" to NULL. Optional event fields (page_path,
// metadata) arrive as empty strings when absent and must not be stored as
// empty text.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// TimeToNullTime maps the zero time to NULL. Used for removed_at, which stays
// NULL until the cleanup flow stamps it.
func TimeToNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
