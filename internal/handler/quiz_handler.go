package handler

import (
	"secure-sense/internal/dto"
	"secure-sense/internal/logger"
	"secure-sense/internal/service"
	"secure-sense/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz completion reporting.
type QuizHandler struct {
	service   service.QuizResultService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizResultService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CompleteQuiz godoc
// @Summary Record a completed quiz attempt
// @Description Inserts one attempt row; a retake creates a new row
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizCompleteRequest true "Attempt details"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz/complete [post]
func (h *QuizHandler) CompleteQuiz(c *fiber.Ctx) error {
	var req dto.QuizCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateQuizComplete(&req); len(errs) > 0 {
		return errs
	}

	if err := h.service.CompleteQuiz(c.Context(), &req); err != nil {
		logger.Get().Error("Failed to save quiz results",
			zap.Error(err),
			zap.String("session_id", req.SessionID),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to save quiz results",
		})
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}
