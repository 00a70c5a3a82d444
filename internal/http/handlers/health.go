package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/davide/animerge/internal/sources"
)

type HealthHandler struct {
	registry *sources.Registry
}

func NewHealthHandler(registry *sources.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"sources": len(h.registry.List()),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
