package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
	"secure-sense/internal/handler"
	"secure-sense/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// --- Manual Mocks ---

// MockAnalyticsService
type MockAnalyticsService struct {
	TrackEventFunc      func(ctx context.Context, req *dto.TrackEventRequest) error
	GetStatsFunc        func(ctx context.Context) (*dto.StatsResponse, error)
	GetRecentEventsFunc func(ctx context.Context, limit int) (*dto.RecentEventsResponse, error)
}

func (m *MockAnalyticsService) TrackEvent(ctx context.Context, req *dto.TrackEventRequest) error {
	if m.TrackEventFunc != nil {
		return m.TrackEventFunc(ctx, req)
	}
	panic("MockAnalyticsService.TrackEventFunc not implemented")
}
func (m *MockAnalyticsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx)
	}
	panic("MockAnalyticsService.GetStatsFunc not implemented")
}
func (m *MockAnalyticsService) GetRecentEvents(ctx context.Context, limit int) (*dto.RecentEventsResponse, error) {
	if m.GetRecentEventsFunc != nil {
		return m.GetRecentEventsFunc(ctx, limit)
	}
	panic("MockAnalyticsService.GetRecentEventsFunc not implemented")
}

func setupAnalyticsApp(svc *MockAnalyticsService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewAnalyticsHandler(svc)
	app.Post("/api/analytics/track", h.TrackEvent)
	app.Get("/api/analytics/stats", h.GetStats)
	app.Get("/api/analytics/recent", h.GetRecentEvents)
	return app
}

func TestTrackEvent_Success(t *testing.T) {
	var tracked *dto.TrackEventRequest
	app := setupAnalyticsApp(&MockAnalyticsService{
		TrackEventFunc: func(ctx context.Context, req *dto.TrackEventRequest) error {
			tracked = req
			return nil
		},
	})

	body, _ := json.Marshal(map[string]interface{}{
		"session_id": "session_1700000000000_abc123",
		"event_type": "page_view",
		"page_path":  "/scan",
		"metadata":   nil,
	})
	req := httptest.NewRequest("POST", "/api/analytics/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.SuccessResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &result))
	assert.True(t, result.Success)

	assert.NotNil(t, tracked)
	assert.Equal(t, "session_1700000000000_abc123", tracked.SessionID)
	assert.Equal(t, "page_view", tracked.EventType)
	assert.Equal(t, "/scan", *tracked.PagePath)
	assert.Nil(t, tracked.Metadata)
}

func TestTrackEvent_MissingSessionID(t *testing.T) {
	app := setupAnalyticsApp(&MockAnalyticsService{
		TrackEventFunc: func(ctx context.Context, req *dto.TrackEventRequest) error {
			t.Fatal("service must not be called for invalid requests")
			return nil
		},
	})

	body, _ := json.Marshal(map[string]interface{}{"event_type": "page_view"})
	req := httptest.NewRequest("POST", "/api/analytics/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var result middleware.ValidationErrorResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &result))
	assert.Equal(t, string(domain.CodeValidation), result.Code)
	assert.NotEmpty(t, result.Errors)
	assert.Equal(t, "session_id", result.Errors[0].Field)
}

func TestTrackEvent_MalformedBody(t *testing.T) {
	app := setupAnalyticsApp(&MockAnalyticsService{})

	req := httptest.NewRequest("POST", "/api/analytics/track", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTrackEvent_PersistenceFailure(t *testing.T) {
	app := setupAnalyticsApp(&MockAnalyticsService{
		TrackEventFunc: func(ctx context.Context, req *dto.TrackEventRequest) error {
			return domain.NewEventPersistenceError(assert.AnError)
		},
	})

	body, _ := json.Marshal(map[string]interface{}{
		"session_id": "s",
		"event_type": "page_view",
	})
	req := httptest.NewRequest("POST", "/api/analytics/track", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var result dto.ErrorResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &result))
	assert.Equal(t, "Failed to track event", result.Error)
}

func TestGetStats_Success(t *testing.T) {
	app := setupAnalyticsApp(&MockAnalyticsService{
		GetStatsFunc: func(ctx context.Context) (*dto.StatsResponse, error) {
			return &dto.StatsResponse{
				TotalSessions:     1,
				TotalPageViews:    4,
				TotalQuizAttempts: 2,
				AverageQuizScore:  50.0,
				CompletionRate:    100.0,
				EventBreakdown:    []domain.EventTypeCount{{EventType: "page_view", Count: 4}},
				TopPages:          []domain.PageViewCount{{PagePath: "/scan", Views: 2}},
			}, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/analytics/stats", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.StatsResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &result))
	assert.Equal(t, int64(1), result.TotalSessions)
	assert.Equal(t, int64(4), result.TotalPageViews)
	assert.Equal(t, 50.0, result.AverageQuizScore)
	assert.Equal(t, 100.0, result.CompletionRate)
	assert.Len(t, result.EventBreakdown, 1)
	assert.Len(t, result.TopPages, 1)
}

func TestGetStats_QueryFailure(t *testing.T) {
	app := setupAnalyticsApp(&MockAnalyticsService{
		GetStatsFunc: func(ctx context.Context) (*dto.StatsResponse, error) {
			return nil, domain.NewStatsQueryError(assert.AnError)
		},
	})

	req := httptest.NewRequest("GET", "/api/analytics/stats", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var result dto.ErrorResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &result))
	assert.Equal(t, "Failed to fetch analytics", result.Error)
}

func TestGetRecentEvents_PassesLimit(t *testing.T) {
	app := setupAnalyticsApp(&MockAnalyticsService{
		GetRecentEventsFunc: func(ctx context.Context, limit int) (*dto.RecentEventsResponse, error) {
			assert.Equal(t, 5, limit)
			return &dto.RecentEventsResponse{Events: []dto.RecentEvent{{SessionID: "s", EventType: "page_view"}}}, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/analytics/recent?limit=5", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result dto.RecentEventsResponse
	respBody, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(respBody, &result))
	assert.Len(t, result.Events, 1)
}
