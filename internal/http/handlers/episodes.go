package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/davide/animerge/internal/aggregate"
	"github.com/davide/animerge/internal/sources"
)

type EpisodesHandler struct {
	service  *aggregate.Service
	registry *sources.Registry
}

func NewEpisodesHandler(service *aggregate.Service, registry *sources.Registry) *EpisodesHandler {
	return &EpisodesHandler{service: service, registry: registry}
}

func (h *EpisodesHandler) List(c *fiber.Ctx) error {
	ids := sourceIDsFromQuery(c, h.registry)
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "At least one source id must be provided",
		})
	}

	episodes := h.service.Episodes(c.Context(), ids)
	if episodes == nil {
		episodes = []aggregate.AggregatedEpisode{}
	}
	return c.JSON(episodes)
}

func (h *EpisodesHandler) Chapters(c *fiber.Ctx) error {
	ids := sourceIDsFromQuery(c, h.registry)
	if len(ids) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "At least one source id must be provided",
		})
	}

	chapters := h.service.Chapters(c.Context(), ids)
	if chapters == nil {
		chapters = []aggregate.AggregatedChapter{}
	}
	return c.JSON(chapters)
}

// sourceIDsFromQuery reads one query parameter per registered source key,
// e.g. /episodes?animeworld=naruto.q1junc&animesaturn=naruto.
func sourceIDsFromQuery(c *fiber.Ctx, registry *sources.Registry) map[string]string {
	ids := make(map[string]string)
	for _, descriptor := range registry.List() {
		if value := strings.TrimSpace(c.Query(descriptor.Key)); value != "" {
			ids[descriptor.Key] = value
		}
	}
	return ids
}
