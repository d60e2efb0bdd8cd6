package service

import (
	"context"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// topListLimit bounds event_breakdown and top_pages, matching the dashboard.
const topListLimit = 10

// AnalyticsService ingests raw events and computes the dashboard aggregates.
type AnalyticsService interface {
	TrackEvent(ctx context.Context, req *dto.TrackEventRequest) error
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	GetRecentEvents(ctx context.Context, limit int) (*dto.RecentEventsResponse, error)
}

type analyticsService struct {
	events domain.EventRepository
	quiz   domain.QuizSessionRepository
	recent RecentActivityService
}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService(events domain.EventRepository, quiz domain.QuizSessionRepository, recent RecentActivityService) AnalyticsService {
	return &analyticsService{
		events: events,
		quiz:   quiz,
		recent: recent,
	}
}

// TrackEvent persists exactly one event row. The recent-activity feed write is
// best-effort and never fails the ingestion.
func (s *analyticsService) TrackEvent(ctx context.Context, req *dto.TrackEventRequest) error {
	event := &domain.Event{
		SessionID: req.SessionID,
		EventType: req.EventType,
	}
	if req.PagePath != nil {
		event.PagePath = *req.PagePath
	}
	if req.Metadata != nil {
		event.Metadata = *req.Metadata
	}

	if err := s.events.CreateEvent(ctx, event); err != nil {
		return domain.NewEventPersistenceError(err)
	}

	s.recent.Record(ctx, event)

	logger.Get().Debug("Tracked analytics event",
		zap.String("session_id", event.SessionID),
		zap.String("event_type", event.EventType),
		zap.String("page_path", event.PagePath),
	)
	return nil
}

// GetStats recomputes every aggregate over the full history on each call.
// The queries are independent, so they run concurrently; any failure fails
// the whole call rather than returning a partial summary.
func (s *analyticsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	var summary domain.StatsSummary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.events.CountDistinctSessions(gctx)
		summary.TotalSessions = total
		return err
	})
	g.Go(func() error {
		total, err := s.events.CountEventsByType(gctx, domain.EventPageView)
		summary.TotalPageViews = total
		return err
	})
	g.Go(func() error {
		total, err := s.quiz.CountAttempts(gctx)
		summary.TotalQuizAttempts = total
		return err
	})
	g.Go(func() error {
		avg, err := s.quiz.AverageScorePercent(gctx)
		summary.AverageQuizScore = avg
		return err
	})
	g.Go(func() error {
		rate, err := s.quiz.CompletionRatePercent(gctx)
		summary.CompletionRate = rate
		return err
	})
	g.Go(func() error {
		breakdown, err := s.events.EventBreakdown(gctx, topListLimit)
		summary.EventBreakdown = breakdown
		return err
	})
	g.Go(func() error {
		pages, err := s.events.TopPages(gctx, topListLimit)
		summary.TopPages = pages
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, domain.NewStatsQueryError(err)
	}

	if summary.EventBreakdown == nil {
		summary.EventBreakdown = []domain.EventTypeCount{}
	}
	if summary.TopPages == nil {
		summary.TopPages = []domain.PageViewCount{}
	}

	return &dto.StatsResponse{
		TotalSessions:     summary.TotalSessions,
		TotalPageViews:    summary.TotalPageViews,
		TotalQuizAttempts: summary.TotalQuizAttempts,
		AverageQuizScore:  summary.AverageQuizScore,
		CompletionRate:    summary.CompletionRate,
		EventBreakdown:    summary.EventBreakdown,
		TopPages:          summary.TopPages,
	}, nil
}

// GetRecentEvents serves the best-effort live feed.
func (s *analyticsService) GetRecentEvents(ctx context.Context, limit int) (*dto.RecentEventsResponse, error) {
	events, err := s.recent.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &dto.RecentEventsResponse{Events: events}, nil
}
