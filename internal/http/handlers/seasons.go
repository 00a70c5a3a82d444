package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davide/animerge/internal/aggregate"
	"github.com/davide/animerge/internal/sources"
)

type SeasonsHandler struct {
	service  *aggregate.Service
	registry *sources.Registry
}

func NewSeasonsHandler(service *aggregate.Service, registry *sources.Registry) *SeasonsHandler {
	return &SeasonsHandler{service: service, registry: registry}
}

func (h *SeasonsHandler) List(c *fiber.Ctx) error {
	ids := sourceIDsFromQuery(c, h.registry)
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "At least one source id must be provided",
		})
	}

	return c.JSON(h.service.Seasons(c.Context(), ids))
}
