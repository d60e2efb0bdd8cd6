package handler

import (
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"
	"secure-sense/internal/service"
	"secure-sense/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ThreatHandler handles simulated threat tracking and removal.
type ThreatHandler struct {
	service   service.ThreatService
	validator *validation.Validator
}

// NewThreatHandler creates a new ThreatHandler instance
func NewThreatHandler(service service.ThreatService) *ThreatHandler {
	return &ThreatHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// TrackThreats godoc
// @Summary Track a batch of detected threats
// @Description Inserts one unremoved row per threat, atomically for the batch
// @Tags threats
// @Accept json
// @Produce json
// @Param request body dto.TrackThreatsRequest true "Threat batch"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /threats/track [post]
func (h *ThreatHandler) TrackThreats(c *fiber.Ctx) error {
	var req dto.TrackThreatsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateTrackThreats(&req); len(errs) > 0 {
		return errs
	}

	if err := h.service.TrackThreats(c.Context(), &req); err != nil {
		logger.Get().Error("Failed to track threats",
			zap.Error(err),
			zap.String("session_id", req.SessionID),
			zap.Int("count", len(req.Threats)),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to track threats",
		})
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}

// RemoveThreats godoc
// @Summary Mark a session's threats as removed
// @Description Bulk-updates every unremoved threat for the session; idempotent
// @Tags threats
// @Accept json
// @Produce json
// @Param request body dto.RemoveThreatsRequest true "Session reference"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /threats/remove [post]
func (h *ThreatHandler) RemoveThreats(c *fiber.Ctx) error {
	var req dto.RemoveThreatsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateRemoveThreats(&req); len(errs) > 0 {
		return errs
	}

	if err := h.service.RemoveThreats(c.Context(), &req); err != nil {
		logger.Get().Error("Failed to remove threats",
			zap.Error(err),
			zap.String("session_id", req.SessionID),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to remove threats",
		})
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}
