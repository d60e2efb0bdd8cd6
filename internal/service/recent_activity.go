package service

import (
	"context"
	"encoding/json"
	"time"

	"secure-sense/internal/cache"
	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"

	"go.uber.org/zap"
)

// recentFeedMaxLen caps the feed so the dashboard's live view stays bounded.
const recentFeedMaxLen = 100

// RecentActivityService keeps a short, best-effort feed of the latest tracked
// events for the dashboard. It is a side channel: the durable event log in the
// database is the source of truth and never depends on this feed.
type RecentActivityService interface {
	Record(ctx context.Context, event *domain.Event)
	List(ctx context.Context, limit int) ([]dto.RecentEvent, error)
}

type recentActivityServiceImpl struct {
	cache domain.Cache
}

// NewRecentActivityService creates a new RecentActivityService backed by the
// given cache. A nil cache yields a no-op implementation so the ingestion path
// works without Redis.
func NewRecentActivityService(c domain.Cache) RecentActivityService {
	if c == nil {
		logger.Get().Warn("RecentActivityService initialized with nil cache. Service will be no-op.")
		return &noopRecentActivityService{}
	}
	return &recentActivityServiceImpl{cache: c}
}

func (s *recentActivityServiceImpl) feedKey() string {
	return cache.GenerateCacheKey("analytics", "recent", "events")
}

// Record pushes one event onto the capped feed. Failures are logged and
// swallowed; the feed is best-effort by contract.
func (s *recentActivityServiceImpl) Record(ctx context.Context, event *domain.Event) {
	entry := dto.RecentEvent{
		SessionID: event.SessionID,
		EventType: event.EventType,
		PagePath:  event.PagePath,
		CreatedAt: event.CreatedAt.Format(time.RFC3339),
	}

	dataBytes, err := json.Marshal(entry)
	if err != nil {
		logger.Get().Warn("Failed to marshal recent activity entry", zap.Error(err))
		return
	}

	if err := s.cache.PushCapped(ctx, s.feedKey(), string(dataBytes), recentFeedMaxLen); err != nil {
		logger.Get().Warn("Failed to push recent activity entry",
			zap.Error(err),
			zap.String("event_type", event.EventType),
		)
	}
}

// List returns up to limit entries, newest first.
func (s *recentActivityServiceImpl) List(ctx context.Context, limit int) ([]dto.RecentEvent, error) {
	if limit <= 0 || limit > recentFeedMaxLen {
		limit = recentFeedMaxLen
	}

	raw, err := s.cache.Range(ctx, s.feedKey(), 0, int64(limit)-1)
	if err != nil {
		if err == domain.ErrCacheMiss {
			return []dto.RecentEvent{}, nil
		}
		return nil, domain.NewInternalError("failed to read recent activity feed", err)
	}

	events := make([]dto.RecentEvent, 0, len(raw))
	for _, item := range raw {
		var entry dto.RecentEvent
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			// A single corrupt entry should not break the feed.
			logger.Get().Warn("Skipping malformed recent activity entry", zap.Error(err))
			continue
		}
		events = append(events, entry)
	}
	return events, nil
}

// noopRecentActivityService drops writes and serves an empty feed.
type noopRecentActivityService struct{}

func (s *noopRecentActivityService) Record(ctx context.Context, event *domain.Event) {}

func (s *noopRecentActivityService) List(ctx context.Context, limit int) ([]dto.RecentEvent, error) {
	return []dto.RecentEvent{}, nil
}
