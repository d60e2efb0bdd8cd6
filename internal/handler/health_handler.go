package handler

import (
	"secure-sense/internal/domain"
	"secure-sense/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// HealthHandler reports store and cache reachability.
type HealthHandler struct {
	db    *sqlx.DB
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler instance. cache may be nil when
// the server runs without Redis.
func NewHealthHandler(db *sqlx.DB, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check godoc
// @Summary Health check
// @Description Pings the database and, when configured, the cache
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.db.PingContext(c.Context()); err != nil {
		logger.Get().Error("Health check failed: database unreachable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "database": "down"})
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			logger.Get().Error("Health check failed: cache unreachable", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "cache": "down"})
		}
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
