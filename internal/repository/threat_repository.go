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

// sqlxThreatRepository implements domain.ThreatRepository using sqlx.
type sqlxThreatRepository struct {
	db *sqlx.DB
}

// NewSQLXThreatRepository creates a new instance of sqlxThreatRepository.
func NewSQLXThreatRepository(db *sqlx.DB) domain.ThreatRepository {
	return &sqlxThreatRepository{db: db}
}

// CreateThreats inserts one threat_removals row per element, all unremoved.
// It runs against the transaction in ctx when one is active, so the service
// can make the batch all-or-nothing.
func (r *sqlxThreatRepository) CreateThreats(ctx context.Context, sessionID string, threats []domain.Threat) error {
	executor := GetExecutor(ctx, r.db)

	query := `INSERT INTO threat_removals (id, session_id, threat_name, threat_type, severity, is_removed, removed_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	for _, threat := range threats {
		model := &models.ThreatRemoval{
			ID:         util.NewULID(),
			SessionID:  sessionID,
			ThreatName: threat.Name,
			ThreatType: threat.Type,
			Severity:   threat.Severity,
			IsRemoved:  false,
		}

		_, err := executor.ExecContext(ctx, query,
			model.ID,
			model.SessionID,
			model.ThreatName,
			model.ThreatType,
			model.Severity,
			model.IsRemoved,
			model.RemovedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create threat removal row: %w", err)
		}
	}
	return nil
}

// MarkRemoved flips every unremoved row for the session to removed and stamps
// removed_at. Returns the number of rows updated; zero is a valid no-op.
func (r *sqlxThreatRepository) MarkRemoved(ctx context.Context, sessionID string, removedAt time.Time) (int64, error) {
	query := `UPDATE threat_removals
	          SET is_removed = 1, removed_at = ?
	          WHERE session_id = ? AND is_removed = 0`

	result, err := r.db.ExecContext(ctx, query, util.TimeToNullTime(removedAt), sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark threats removed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
