package service

import (
	"context"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"

	"go.uber.org/zap"
)

// QuizResultService records completed quiz attempts.
type QuizResultService interface {
	CompleteQuiz(ctx context.Context, req *dto.QuizCompleteRequest) error
}

type quizResultService struct {
	quiz domain.QuizSessionRepository
}

// NewQuizResultService creates a new QuizResultService instance.
func NewQuizResultService(quiz domain.QuizSessionRepository) QuizResultService {
	return &quizResultService{quiz: quiz}
}

// CompleteQuiz inserts one attempt row. A retake inserts another row rather
// than updating an earlier one. Score is stored as sent; the client owns the
// grading, so no score<=total check happens here.
func (s *quizResultService) CompleteQuiz(ctx context.Context, req *dto.QuizCompleteRequest) error {
	session := &domain.QuizSession{
		SessionID:      req.SessionID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
	}

	if err := s.quiz.CreateQuizSession(ctx, session); err != nil {
		return domain.NewEventPersistenceError(err)
	}

	logger.Get().Info("Recorded quiz completion",
		zap.String("session_id", session.SessionID),
		zap.Int("score", session.Score),
		zap.Int("total_questions", session.TotalQuestions),
	)
	return nil
}
