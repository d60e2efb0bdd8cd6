package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"secure-sense/internal/domain"
	"secure-sense/internal/repository/models"
	"secure-sense/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizSessionRepository implements domain.QuizSessionRepository using sqlx.
type sqlxQuizSessionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizSessionRepository creates a new instance of sqlxQuizSessionRepository.
func NewSQLXQuizSessionRepository(db *sqlx.DB) domain.QuizSessionRepository {
	return &sqlxQuizSessionRepository{db: db}
}

// CreateQuizSession inserts one completed attempt. completed_at is set
// unconditionally at insert time; there is no in-progress row to update.
func (r *sqlxQuizSessionRepository) CreateQuizSession(ctx context.Context, session *domain.QuizSession) error {
	if session.ID == "" {
		session.ID = util.NewULID()
	}
	session.CompletedAt = time.Now().UTC()

	model := &models.QuizSession{
		ID:             session.ID,
		SessionID:      session.SessionID,
		Score:          sql.NullInt64{Int64: int64(session.Score), Valid: true},
		TotalQuestions: session.TotalQuestions,
		CompletedAt:    sql.NullTime{Time: session.CompletedAt, Valid: true},
	}

	query := `INSERT INTO quiz_sessions (id, session_id, score, total_questions, completed_at)
	          VALUES (:id, :session_id, :score, :total_questions, :completed_at)`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to create quiz session: %w", err)
	}
	return nil
}

// CountAttempts counts all completed quiz attempts.
func (r *sqlxQuizSessionRepository) CountAttempts(ctx context.Context) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM quiz_sessions`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count quiz attempts: %w", err)
	}
	return count, nil
}

// AverageScorePercent returns the mean of score/total_questions*100 over rows
// with a non-null score, or 0 when there are none.
func (r *sqlxQuizSessionRepository) AverageScorePercent(ctx context.Context) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(AVG(CAST(score AS REAL) / CAST(total_questions AS REAL) * 100), 0)
	          FROM quiz_sessions WHERE score IS NOT NULL`
	if err := r.db.GetContext(ctx, &avg, query); err != nil {
		return 0, fmt.Errorf("failed to compute average quiz score: %w", err)
	}
	return avg, nil
}

// CompletionRatePercent returns the percentage of rows with a non-null
// completed_at, or 0 when the table is empty. Division by a zero row count
// yields NULL in SQLite, which COALESCE folds to 0.
func (r *sqlxQuizSessionRepository) CompletionRatePercent(ctx context.Context) (float64, error) {
	var rate float64
	query := `SELECT COALESCE(COUNT(CASE WHEN completed_at IS NOT NULL THEN 1 END) * 100.0 / COUNT(*), 0)
	          FROM quiz_sessions`
	if err := r.db.GetContext(ctx, &rate, query); err != nil {
		return 0, fmt.Errorf("failed to compute completion rate: %w", err)
	}
	return rate, nil
}
