package handler

import (
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"
	"secure-sense/internal/service"
	"secure-sense/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AnalyticsHandler handles event ingestion and the dashboard read paths.
type AnalyticsHandler struct {
	service   service.AnalyticsService
	validator *validation.Validator
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance
func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// TrackEvent godoc
// @Summary Track an analytics event
// @Description Persists one event observed by the training flow
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.TrackEventRequest true "Event details"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/track [post]
func (h *AnalyticsHandler) TrackEvent(c *fiber.Ctx) error {
	var req dto.TrackEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateTrackEvent(&req); len(errs) > 0 {
		return errs // Handled by the ErrorHandler middleware
	}

	if err := h.service.TrackEvent(c.Context(), &req); err != nil {
		logger.Get().Error("Failed to track event",
			zap.Error(err),
			zap.String("session_id", req.SessionID),
			zap.String("event_type", req.EventType),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to track event",
		})
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}

// GetStats godoc
// @Summary Get aggregate analytics statistics
// @Description Recomputes counts, averages, rates and top-N breakdowns over the full history
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/stats [get]
func (h *AnalyticsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		logger.Get().Error("Failed to fetch analytics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch analytics",
		})
	}

	return c.JSON(stats)
}

// GetRecentEvents godoc
// @Summary Get the recent activity feed
// @Description Returns the latest tracked events, newest first
// @Tags analytics
// @Produce json
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} dto.RecentEventsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analytics/recent [get]
func (h *AnalyticsHandler) GetRecentEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	recent, err := h.service.GetRecentEvents(c.Context(), limit)
	if err != nil {
		logger.Get().Error("Failed to fetch recent events", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to fetch recent events",
		})
	}

	return c.JSON(recent)
}
