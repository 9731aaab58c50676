package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stubuddies/backend/internal/config"
	"github.com/stubuddies/backend/internal/database"
	"github.com/stubuddies/backend/internal/dto"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Environment: h.cfg.AppEnv,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DB:          dbStatus,
	})
}
