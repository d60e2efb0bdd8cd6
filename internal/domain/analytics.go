package domain

import (
	"context"
	"time"
)

// Well-known event types emitted by the training flow. The column is an open
// string enum; these constants only cover the events the simulation itself fires.
const (
	EventPageView        = "page_view"
	EventQuizAnswer      = "quiz_answer"
	EventQuizComplete    = "quiz_complete"
	EventQuizRetake      = "quiz_retake"
	EventScanningStarted = "scanning_started"
	EventCleanupComplete = "cleanup_complete"
)

// Event is one timestamped observation of a user action or navigation.
// Rows are append-only; nothing updates or deletes them.
type Event struct {
	ID        string
	SessionID string
	EventType string
	PagePath  string // empty means not recorded (NULL in store)
	Metadata  string // opaque serialized bag, never queried into
	CreatedAt time.Time
}

// QuizSession is one completed quiz attempt. A retake inserts a new row.
type QuizSession struct {
	ID             string
	SessionID      string
	Score          int
	TotalQuestions int
	CompletedAt    time.Time
}

// Threat is the wire-level shape of one simulated detection.
type Threat struct {
	Name     string
	Type     string
	Severity string
}

// ThreatRemoval is one simulated detected threat and its removal state.
type ThreatRemoval struct {
	ID         string
	SessionID  string
	ThreatName string
	ThreatType string
	Severity   string
	IsRemoved  bool
	RemovedAt  *time.Time
}

// EventTypeCount is one event_breakdown entry.
type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// PageViewCount is one top_pages entry.
type PageViewCount struct {
	PagePath string `json:"page_path"`
	Views    int64  `json:"views"`
}

// StatsSummary holds the full-history aggregates served by the stats endpoint.
type StatsSummary struct {
	TotalSessions     int64
	TotalPageViews    int64
	TotalQuizAttempts int64
	AverageQuizScore  float64
	CompletionRate    float64
	EventBreakdown    []EventTypeCount
	TopPages          []PageViewCount
}

// EventRepository persists raw analytics events and answers the aggregate
// queries over them.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *Event) error
	CountDistinctSessions(ctx context.Context) (int64, error)
	CountEventsByType(ctx context.Context, eventType string) (int64, error)
	EventBreakdown(ctx context.Context, limit int) ([]EventTypeCount, error)
	TopPages(ctx context.Context, limit int) ([]PageViewCount, error)
}

// QuizSessionRepository persists completed quiz attempts.
type QuizSessionRepository interface {
	CreateQuizSession(ctx context.Context, session *QuizSession) error
	CountAttempts(ctx context.Context) (int64, error)
	AverageScorePercent(ctx context.Context) (float64, error)
	CompletionRatePercent(ctx context.Context) (float64, error)
}

// ThreatRepository persists simulated threats and their bulk removal.
type ThreatRepository interface {
	CreateThreats(ctx context.Context, sessionID string, threats []Threat) error
	MarkRemoved(ctx context.Context, sessionID string, removedAt time.Time) (int64, error)
}

// TransactionManager runs a function inside a single store transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
