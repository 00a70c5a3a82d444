package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/davide/animerge/internal/aggregate"
	"github.com/davide/animerge/internal/config"
	"github.com/davide/animerge/internal/http/handlers"
	"github.com/davide/animerge/internal/sources"
)

func NewServer(cfg config.Config, registry *sources.Registry, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(recover.New())
	app.Use(cors.New())

	service := aggregate.NewService(registry, aggregate.ServiceConfig{SourceTimeout: cfg.SourceTimeout}, logger)

	search := handlers.NewSearchHandler(service)
	episodes := handlers.NewEpisodesHandler(service, registry)
	streams := handlers.NewStreamsHandler(service, registry)
	seasons := handlers.NewSeasonsHandler(service, registry)
	sourceHandlers := handlers.NewSourcesHandler(registry)
	health := handlers.NewHealthHandler(registry)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": cfg.AppName + " API", "version": "1.0.0"})
	})
	app.Get("/search", search.Search)
	app.Get("/episodes", episodes.List)
	app.Get("/chapters", episodes.Chapters)
	app.Get("/stream", streams.Resolve)
	app.Get("/seasons", seasons.List)
	app.Get("/health", health.Check)
	app.Get("/v1/health", health.Check)

	v1 := app.Group("/v1")
	v1.Get("/sources", sourceHandlers.List)
	v1.Get("/sources/health", sourceHandlers.Health)

	return app
}
