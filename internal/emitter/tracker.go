package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"secure-sense/internal/domain"
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"

	"go.uber.org/zap"
)

// Tracker is the client-side analytics emitter. It owns a stable session
// identifier and posts best-effort event records to the backend. No call ever
// blocks or fails the action that triggered it: network and server errors are
// logged and swallowed, and there are no retries.
type Tracker struct {
	baseURL   string
	client    *http.Client
	sessionID string

	mu          sync.Mutex
	currentPath string

	wg sync.WaitGroup
}

// NewTracker creates a Tracker bound to the backend at baseURL. The session
// identifier is acquired from store, so passing the same store across Trackers
// continues the same session.
func NewTracker(baseURL string, store SessionStore) *Tracker {
	return &Tracker{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		sessionID: acquireSessionID(store),
	}
}

// SessionID returns the stable session identifier.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// Navigate records a route change and emits exactly one page_view for it.
func (t *Tracker) Navigate(ctx context.Context, path string) {
	t.mu.Lock()
	t.currentPath = path
	t.mu.Unlock()

	t.TrackEvent(ctx, domain.EventPageView, nil)
}

// TrackEvent emits one event record on a detached goroutine and returns
// immediately. metadata, when present, travels as an opaque serialized string.
func (t *Tracker) TrackEvent(ctx context.Context, eventType string, metadata map[string]interface{}) {
	t.mu.Lock()
	path := t.currentPath
	t.mu.Unlock()

	req := dto.TrackEventRequest{
		SessionID: t.sessionID,
		EventType: eventType,
	}
	if path != "" {
		req.PagePath = &path
	}
	if metadata != nil {
		serialized, err := json.Marshal(metadata)
		if err != nil {
			logger.Get().Warn("Analytics tracking failed: bad metadata", zap.Error(err))
			return
		}
		metadataStr := string(serialized)
		req.Metadata = &metadataStr
	}

	// The send must outlive the triggering action, so the caller's cancellation
	// does not propagate to it.
	sendCtx := context.WithoutCancel(ctx)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.post(sendCtx, "/api/analytics/track", req); err != nil {
			logger.Get().Warn("Analytics tracking failed",
				zap.Error(err),
				zap.String("event_type", eventType),
			)
		}
	}()
}

// CompleteQuiz reports a finished quiz attempt. Failures are swallowed; the
// quiz result screen never waits on telemetry.
func (t *Tracker) CompleteQuiz(ctx context.Context, score, totalQuestions int) {
	req := dto.QuizCompleteRequest{
		SessionID:      t.sessionID,
		Score:          score,
		TotalQuestions: totalQuestions,
	}
	if err := t.post(ctx, "/api/quiz/complete", req); err != nil {
		logger.Get().Warn("Failed to report quiz completion", zap.Error(err))
	}
}

// TrackThreats reports the batch of threats shown on the cleanup screen.
func (t *Tracker) TrackThreats(ctx context.Context, threats []dto.ThreatPayload) {
	req := dto.TrackThreatsRequest{
		SessionID: t.sessionID,
		Threats:   threats,
	}
	if err := t.post(ctx, "/api/threats/track", req); err != nil {
		logger.Get().Warn("Failed to track threats", zap.Error(err))
	}
}

// RemoveThreats reports that the cleanup animation finished.
func (t *Tracker) RemoveThreats(ctx context.Context) {
	req := dto.RemoveThreatsRequest{SessionID: t.sessionID}
	if err := t.post(ctx, "/api/threats/remove", req); err != nil {
		logger.Get().Warn("Failed to report threat removal", zap.Error(err))
	}
}

// Flush waits for in-flight fire-and-forget sends. Call before process exit so
// pending events are not dropped on the floor.
func (t *Tracker) Flush() {
	t.wg.Wait()
}

func (t *Tracker) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server responded with status %d", resp.StatusCode)
	}
	return nil
}
