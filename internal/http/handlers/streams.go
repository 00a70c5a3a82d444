package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davide/animerge/internal/aggregate"
	"github.com/davide/animerge/internal/sources"
)

type StreamsHandler struct {
	service  *aggregate.Service
	registry *sources.Registry
}

func NewStreamsHandler(service *aggregate.Service, registry *sources.Registry) *StreamsHandler {
	return &StreamsHandler{service: service, registry: registry}
}

func (h *StreamsHandler) Resolve(c *fiber.Ctx) error {
	ids := sourceIDsFromQuery(c, h.registry)
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "At least one episode id must be provided",
		})
	}

	return c.JSON(h.service.Streams(c.Context(), ids))
}
