package dto

import "secure-sense/internal/domain"

// TrackEventRequest is the body of POST /api/analytics/track.
// @Description Request body for tracking one analytics event
type TrackEventRequest struct {
	SessionID string  `json:"session_id"`
	EventType string  `json:"event_type"`
	PagePath  *string `json:"page_path"`
	Metadata  *string `json:"metadata"`
}

// QuizCompleteRequest is the body of POST /api/quiz/complete.
// @Description Request body for recording one completed quiz attempt
type QuizCompleteRequest struct {
	SessionID      string `json:"session_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

// ThreatPayload is one element of a threat tracking request.
type ThreatPayload struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
}

// TrackThreatsRequest is the body of POST /api/threats/track.
type TrackThreatsRequest struct {
	SessionID string          `json:"session_id"`
	Threats   []ThreatPayload `json:"threats"`
}

// RemoveThreatsRequest is the body of POST /api/threats/remove.
type RemoveThreatsRequest struct {
	SessionID string `json:"session_id"`
}

// SuccessResponse acknowledges a fire-and-forget write.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse is the body of GET /api/analytics/stats.
// @Description Aggregate statistics over the full event and quiz history
type StatsResponse struct {
	TotalSessions     int64                   `json:"total_sessions"`
	TotalPageViews    int64                   `json:"total_page_views"`
	TotalQuizAttempts int64                   `json:"total_quiz_attempts"`
	AverageQuizScore  float64                 `json:"average_quiz_score"`
	CompletionRate    float64                 `json:"completion_rate"`
	EventBreakdown    []domain.EventTypeCount `json:"event_breakdown"`
	TopPages          []domain.PageViewCount  `json:"top_pages"`
}

// RecentEvent is one entry of the recent-activity feed.
type RecentEvent struct {
	SessionID string `json:"session_id"`
	EventType string `json:"event_type"`
	PagePath  string `json:"page_path,omitempty"`
	CreatedAt string `json:"created_at"`
}

// RecentEventsResponse is the body of GET /api/analytics/recent.
type RecentEventsResponse struct {
	Events []RecentEvent `json:"events"`
}
