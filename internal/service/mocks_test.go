package service

import (
	"context"
	"time"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
)

// --- Manual Mocks ---

// MockEventRepository
type MockEventRepository struct {
	CreateEventFunc           func(ctx context.Context, event *domain.Event) error
	CountDistinctSessionsFunc func(ctx context.Context) (int64, error)
	CountEventsByTypeFunc     func(ctx context.Context, eventType string) (int64, error)
	EventBreakdownFunc        func(ctx context.Context, limit int) ([]domain.EventTypeCount, error)
	TopPagesFunc              func(ctx context.Context, limit int) ([]domain.PageViewCount, error)
}

func (m *MockEventRepository) CreateEvent(ctx context.Context, event *domain.Event) error {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, event)
	}
	panic("MockEventRepository.CreateEventFunc not implemented")
}
func (m *MockEventRepository) CountDistinctSessions(ctx context.Context) (int64, error) {
	if m.CountDistinctSessionsFunc != nil {
		return m.CountDistinctSessionsFunc(ctx)
	}
	panic("MockEventRepository.CountDistinctSessionsFunc not implemented")
}
func (m *MockEventRepository) CountEventsByType(ctx context.Context, eventType string) (int64, error) {
	if m.CountEventsByTypeFunc != nil {
		return m.CountEventsByTypeFunc(ctx, eventType)
	}
	panic("MockEventRepository.CountEventsByTypeFunc not implemented")
}
func (m *MockEventRepository) EventBreakdown(ctx context.Context, limit int) ([]domain.EventTypeCount, error) {
	if m.EventBreakdownFunc != nil {
		return m.EventBreakdownFunc(ctx, limit)
	}
	panic("MockEventRepository.EventBreakdownFunc not implemented")
}
func (m *MockEventRepository) TopPages(ctx context.Context, limit int) ([]domain.PageViewCount, error) {
	if m.TopPagesFunc != nil {
		return m.TopPagesFunc(ctx, limit)
	}
	panic("MockEventRepository.TopPagesFunc not implemented")
}

// MockQuizSessionRepository
type MockQuizSessionRepository struct {
	CreateQuizSessionFunc     func(ctx context.Context, session *domain.QuizSession) error
	CountAttemptsFunc         func(ctx context.Context) (int64, error)
	AverageScorePercentFunc   func(ctx context.Context) (float64, error)
	CompletionRatePercentFunc func(ctx context.Context) (float64, error)
}

func (m *MockQuizSessionRepository) CreateQuizSession(ctx context.Context, session *domain.QuizSession) error {
	if m.CreateQuizSessionFunc != nil {
		return m.CreateQuizSessionFunc(ctx, session)
	}
	panic("MockQuizSessionRepository.CreateQuizSessionFunc not implemented")
}
func (m *MockQuizSessionRepository) CountAttempts(ctx context.Context) (int64, error) {
	if m.CountAttemptsFunc != nil {
		return m.CountAttemptsFunc(ctx)
	}
	panic("MockQuizSessionRepository.CountAttemptsFunc not implemented")
}
func (m *MockQuizSessionRepository) AverageScorePercent(ctx context.Context) (float64, error) {
	if m.AverageScorePercentFunc != nil {
		return m.AverageScorePercentFunc(ctx)
	}
	panic("MockQuizSessionRepository.AverageScorePercentFunc not implemented")
}
func (m *MockQuizSessionRepository) CompletionRatePercent(ctx context.Context) (float64, error) {
	if m.CompletionRatePercentFunc != nil {
		return m.CompletionRatePercentFunc(ctx)
	}
	panic("MockQuizSessionRepository.CompletionRatePercentFunc not implemented")
}

// MockThreatRepository
type MockThreatRepository struct {
	CreateThreatsFunc func(ctx context.Context, sessionID string, threats []domain.Threat) error
	MarkRemovedFunc   func(ctx context.Context, sessionID string, removedAt time.Time) (int64, error)
}

func (m *MockThreatRepository) CreateThreats(ctx context.Context, sessionID string, threats []domain.Threat) error {
	if m.CreateThreatsFunc != nil {
		return m.CreateThreatsFunc(ctx, sessionID, threats)
	}
	panic("MockThreatRepository.CreateThreatsFunc not implemented")
}
func (m *MockThreatRepository) MarkRemoved(ctx context.Context, sessionID string, removedAt time.Time) (int64, error) {
	if m.MarkRemovedFunc != nil {
		return m.MarkRemovedFunc(ctx, sessionID, removedAt)
	}
	panic("MockThreatRepository.MarkRemovedFunc not implemented")
}

// MockTransactionManager runs the function inline, mimicking a committed txn.
type MockTransactionManager struct {
	WithTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

// MockRecentActivityService records calls for assertions.
type MockRecentActivityService struct {
	Recorded []*domain.Event
	ListFunc func(ctx context.Context, limit int) ([]dto.RecentEvent, error)
}

func (m *MockRecentActivityService) Record(ctx context.Context, event *domain.Event) {
	m.Recorded = append(m.Recorded, event)
}
func (m *MockRecentActivityService) List(ctx context.Context, limit int) ([]dto.RecentEvent, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return []dto.RecentEvent{}, nil
}

// MockCache backs the recent-activity service tests.
type MockCache struct {
	GetFunc        func(ctx context.Context, key string) (string, error)
	SetFunc        func(ctx context.Context, key string, value string, expiration time.Duration) error
	DeleteFunc     func(ctx context.Context, key string) error
	PingFunc       func(ctx context.Context) error
	PushCappedFunc func(ctx context.Context, key string, value string, maxLen int64) error
	RangeFunc      func(ctx context.Context, key string, start, stop int64) ([]string, error)
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", domain.ErrCacheMiss
}
func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	return nil
}
func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}
func (m *MockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
func (m *MockCache) PushCapped(ctx context.Context, key string, value string, maxLen int64) error {
	if m.PushCappedFunc != nil {
		return m.PushCappedFunc(ctx, key, value, maxLen)
	}
	return nil
}
func (m *MockCache) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if m.RangeFunc != nil {
		return m.RangeFunc(ctx, key, start, stop)
	}
	return nil, domain.ErrCacheMiss
}
