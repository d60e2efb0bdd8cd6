package models

import (
	"database/sql"
	"time"
)

// AnalyticsEvent mirrors one row of the analytics_events table.
type AnalyticsEvent struct {
	ID        string         `db:"id"`
	SessionID string         `db:"session_id"`
	EventType string         `db:"event_type"`
	PagePath  sql.NullString `db:"page_path"`
	Metadata  sql.NullString `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
}

// QuizSession mirrors one row of the quiz_sessions table. Score is nullable in
// the schema even though the current client always sends one.
type QuizSession struct {
	ID             string        `db:"id"`
	SessionID      string        `db:"session_id"`
	Score          sql.NullInt64 `db:"score"`
	TotalQuestions int           `db:"total_questions"`
	CompletedAt    sql.NullTime  `db:"completed_at"`
}

// ThreatRemoval mirrors one row of the threat_removals table.
type ThreatRemoval struct {
	ID         string       `db:"id"`
	SessionID  string       `db:"session_id"`
	ThreatName string       `db:"threat_name"`
	ThreatType string       `db:"threat_type"`
	Severity   string       `db:"severity"`
	IsRemoved  bool         `db:"is_removed"`
	RemovedAt  sql.NullTime `db:"removed_at"`
}
