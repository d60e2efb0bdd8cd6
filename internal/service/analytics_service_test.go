package service

import (
	"context"
	"errors"
	"testing"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTrackEvent_PersistsAndFeedsRecentActivity(t *testing.T) {
	var created *domain.Event
	events := &MockEventRepository{
		CreateEventFunc: func(ctx context.Context, event *domain.Event) error {
			created = event
			return nil
		},
	}
	recent := &MockRecentActivityService{}
	svc := NewAnalyticsService(events, &MockQuizSessionRepository{}, recent)

	err := svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
		SessionID: "session_1700000000000_abc123",
		EventType: "page_view",
		PagePath:  strPtr("/scan"),
		Metadata:  strPtr(`{"source":"test"}`),
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "session_1700000000000_abc123", created.SessionID)
	assert.Equal(t, "page_view", created.EventType)
	assert.Equal(t, "/scan", created.PagePath)
	assert.Equal(t, `{"source":"test"}`, created.Metadata)
	assert.Len(t, recent.Recorded, 1, "a successful ingest feeds the recent-activity feed")
}

func TestTrackEvent_PersistenceFailureReturnsDomainError(t *testing.T) {
	events := &MockEventRepository{
		CreateEventFunc: func(ctx context.Context, event *domain.Event) error {
			return errors.New("disk full")
		},
	}
	recent := &MockRecentActivityService{}
	svc := NewAnalyticsService(events, &MockQuizSessionRepository{}, recent)

	err := svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
		SessionID: "s",
		EventType: "page_view",
	})

	assert.Error(t, err)
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeEventPersistence, domainErr.Code)
	assert.Empty(t, recent.Recorded, "failed ingests must not appear in the feed")
}

func TestGetStats_AssemblesAllAggregates(t *testing.T) {
	events := &MockEventRepository{
		CountDistinctSessionsFunc: func(ctx context.Context) (int64, error) { return 1, nil },
		CountEventsByTypeFunc: func(ctx context.Context, eventType string) (int64, error) {
			assert.Equal(t, domain.EventPageView, eventType)
			return 4, nil
		},
		EventBreakdownFunc: func(ctx context.Context, limit int) ([]domain.EventTypeCount, error) {
			assert.Equal(t, 10, limit)
			return []domain.EventTypeCount{{EventType: "page_view", Count: 4}}, nil
		},
		TopPagesFunc: func(ctx context.Context, limit int) ([]domain.PageViewCount, error) {
			assert.Equal(t, 10, limit)
			return []domain.PageViewCount{
				{PagePath: "/scan", Views: 2},
				{PagePath: "/", Views: 1},
				{PagePath: "/quiz", Views: 1},
			}, nil
		},
	}
	quiz := &MockQuizSessionRepository{
		CountAttemptsFunc:         func(ctx context.Context) (int64, error) { return 2, nil },
		AverageScorePercentFunc:   func(ctx context.Context) (float64, error) { return 50.0, nil },
		CompletionRatePercentFunc: func(ctx context.Context) (float64, error) { return 100.0, nil },
	}
	svc := NewAnalyticsService(events, quiz, &MockRecentActivityService{})

	stats, err := svc.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalSessions)
	assert.Equal(t, int64(4), stats.TotalPageViews)
	assert.Equal(t, int64(2), stats.TotalQuizAttempts)
	assert.Equal(t, 50.0, stats.AverageQuizScore)
	assert.Equal(t, 100.0, stats.CompletionRate)
	assert.Len(t, stats.EventBreakdown, 1)
	assert.Equal(t, domain.PageViewCount{PagePath: "/scan", Views: 2}, stats.TopPages[0])
}

func TestGetStats_EmptyStoreYieldsZeroes(t *testing.T) {
	events := &MockEventRepository{
		CountDistinctSessionsFunc: func(ctx context.Context) (int64, error) { return 0, nil },
		CountEventsByTypeFunc:     func(ctx context.Context, eventType string) (int64, error) { return 0, nil },
		EventBreakdownFunc:        func(ctx context.Context, limit int) ([]domain.EventTypeCount, error) { return nil, nil },
		TopPagesFunc:              func(ctx context.Context, limit int) ([]domain.PageViewCount, error) { return nil, nil },
	}
	quiz := &MockQuizSessionRepository{
		CountAttemptsFunc:         func(ctx context.Context) (int64, error) { return 0, nil },
		AverageScorePercentFunc:   func(ctx context.Context) (float64, error) { return 0, nil },
		CompletionRatePercentFunc: func(ctx context.Context) (float64, error) { return 0, nil },
	}
	svc := NewAnalyticsService(events, quiz, &MockRecentActivityService{})

	stats, err := svc.GetStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, stats.AverageQuizScore)
	assert.NotNil(t, stats.EventBreakdown, "breakdown serializes as [] rather than null")
	assert.NotNil(t, stats.TopPages, "top pages serializes as [] rather than null")
}

func TestGetStats_AnyQueryFailureFailsTheWholeCall(t *testing.T) {
	events := &MockEventRepository{
		CountDistinctSessionsFunc: func(ctx context.Context) (int64, error) { return 1, nil },
		CountEventsByTypeFunc:     func(ctx context.Context, eventType string) (int64, error) { return 4, nil },
		EventBreakdownFunc: func(ctx context.Context, limit int) ([]domain.EventTypeCount, error) {
			return nil, errors.New("table locked")
		},
		TopPagesFunc: func(ctx context.Context, limit int) ([]domain.PageViewCount, error) { return nil, nil },
	}
	quiz := &MockQuizSessionRepository{
		CountAttemptsFunc:         func(ctx context.Context) (int64, error) { return 2, nil },
		AverageScorePercentFunc:   func(ctx context.Context) (float64, error) { return 50.0, nil },
		CompletionRatePercentFunc: func(ctx context.Context) (float64, error) { return 100.0, nil },
	}
	svc := NewAnalyticsService(events, quiz, &MockRecentActivityService{})

	stats, err := svc.GetStats(context.Background())
	assert.Nil(t, stats, "no partial aggregate is ever returned")
	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStatsQuery, domainErr.Code)
}

func TestGetRecentEvents_DelegatesToFeed(t *testing.T) {
	recent := &MockRecentActivityService{
		ListFunc: func(ctx context.Context, limit int) ([]dto.RecentEvent, error) {
			assert.Equal(t, 20, limit)
			return []dto.RecentEvent{{SessionID: "s", EventType: "page_view"}}, nil
		},
	}
	svc := NewAnalyticsService(&MockEventRepository{}, &MockQuizSessionRepository{}, recent)

	resp, err := svc.GetRecentEvents(context.Background(), 20)
	assert.NoError(t, err)
	assert.Len(t, resp.Events, 1)
}
