package repository

import (
	"context"
	"fmt"
	"time"

	"secure-sense/internal/domain"
	"secure-sense/internal/repository/models"
	"secure-sense/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxEventRepository implements domain.EventRepository using sqlx.
type sqlxEventRepository struct {
	db *sqlx.DB
}

// NewSQLXEventRepository creates a new instance of sqlxEventRepository.
func NewSQLXEventRepository(db *sqlx.DB) domain.EventRepository {
	return &sqlxEventRepository{db: db}
}

func fromDomainEvent(event *domain.Event) *models.AnalyticsEvent {
	if event == nil {
		return nil
	}
	return &models.AnalyticsEvent{
		ID:        event.ID,
		SessionID: event.SessionID,
		EventType: event.EventType,
		PagePath:  util.StringToNullString(event.PagePath),
		Metadata:  util.StringToNullString(event.Metadata),
		CreatedAt: event.CreatedAt,
	}
}

// CreateEvent inserts one analytics event row. The creation timestamp is
// assigned here, not by the caller, so all rows carry server time.
func (r *sqlxEventRepository) CreateEvent(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = util.NewULID()
	}
	event.CreatedAt = time.Now().UTC()

	model := fromDomainEvent(event)

	query := `INSERT INTO analytics_events (id, session_id, event_type, page_path, metadata, created_at)
	          VALUES (:id, :session_id, :event_type, :page_path, :metadata, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to create analytics event: %w", err)
	}
	return nil
}

// CountDistinctSessions counts distinct session ids over the whole event log.
func (r *sqlxEventRepository) CountDistinctSessions(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(DISTINCT session_id) FROM analytics_events`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count distinct sessions: %w", err)
	}
	return count, nil
}

// CountEventsByType counts events of one type over the whole event log.
func (r *sqlxEventRepository) CountEventsByType(ctx context.Context, eventType string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM analytics_events WHERE event_type = ?`
	if err := r.db.GetContext(ctx, &count, query, eventType); err != nil {
		return 0, fmt.Errorf("failed to count events by type: %w", err)
	}
	return count, nil
}

// EventBreakdown returns the top event types by descending count.
func (r *sqlxEventRepository) EventBreakdown(ctx context.Context, limit int) ([]domain.EventTypeCount, error) {
	rows := []struct {
		EventType string `db:"event_type"`
		Count     int64  `db:"count"`
	}{}

	query := `SELECT event_type, COUNT(*) AS count
	          FROM analytics_events
	          GROUP BY event_type
	          ORDER BY count DESC
	          LIMIT ?`

	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query event breakdown: %w", err)
	}

	breakdown := make([]domain.EventTypeCount, 0, len(rows))
	for _, row := range rows {
		breakdown = append(breakdown, domain.EventTypeCount{EventType: row.EventType, Count: row.Count})
	}
	return breakdown, nil
}

// TopPages returns the most viewed page paths by descending view count.
// Only page_view events with a non-null path participate.
func (r *sqlxEventRepository) TopPages(ctx context.Context, limit int) ([]domain.PageViewCount, error) {
	rows := []struct {
		PagePath string `db:"page_path"`
		Views    int64  `db:"views"`
	}{}

	query := `SELECT page_path, COUNT(*) AS views
	          FROM analytics_events
	          WHERE event_type = ? AND page_path IS NOT NULL
	          GROUP BY page_path
	          ORDER BY views DESC
	          LIMIT ?`

	if err := r.db.SelectContext(ctx, &rows, query, domain.EventPageView, limit); err != nil {
		return nil, fmt.Errorf("failed to query top pages: %w", err)
	}

	pages := make([]domain.PageViewCount, 0, len(rows))
	for _, row := range rows {
		pages = append(pages, domain.PageViewCount{PagePath: row.PagePath, Views: row.Views})
	}
	return pages, nil
}
