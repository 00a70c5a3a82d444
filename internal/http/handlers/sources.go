package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/davide/animerge/internal/sources"
)

type SourcesHandler struct {
	registry *sources.Registry
}

func NewSourcesHandler(registry *sources.Registry) *SourcesHandler {
	return &SourcesHandler{registry: registry}
}

func (h *SourcesHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.registry.List()})
}

func (h *SourcesHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()
	return c.JSON(fiber.Map{"items": h.registry.Health(ctx)})
}
