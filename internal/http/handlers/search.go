package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"github.com/davide/animerge/internal/aggregate"
)

type SearchHandler struct {
	service *aggregate.Service
}

func NewSearchHandler(service *aggregate.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(query) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Query must be at least 2 characters long",
		})
	}

	records := h.service.Search(c.Context(), query)
	if records == nil {
		records = []aggregate.UnifiedRecord{}
	}
	return c.JSON(records)
}
