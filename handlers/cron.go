package handlers

import (
	"fight-picks-system/middleware"
	"fight-picks-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupCronRoutes registers the manual pipeline triggers. They mirror
// what the in-process scheduler runs on its own, so an operator can
// re-fire a failed run without waiting a week; the pipeline functions
// are idempotent and tolerate re-invocation.
func SetupCronRoutes(
	app *fiber.App,
	seasons *services.SeasonService,
	eventSync *services.EventSyncService,
	scoring *services.ScoringService,
) {
	cron := app.Group("/cron", middleware.CronAuthMiddleware())

	syncHandler := func(c *fiber.Ctx) error {
		seasons.EnsureSeasonResetIfNeeded()
		return c.JSON(eventSync.SyncUpcomingEvent(c.Context()))
	}
	scoreHandler := func(c *fiber.Ctx) error {
		return c.JSON(scoring.ApplyLatestEventResults(c.Context()))
	}
	seasonHandler := func(c *fiber.Ctx) error {
		return c.JSON(seasons.EnsureSeasonResetIfNeeded())
	}

	// GET kept alongside POST so bare-bones external cron pingers work.
	cron.Post("/sync", syncHandler)
	cron.Get("/sync", syncHandler)
	cron.Post("/score", scoreHandler)
	cron.Get("/score", scoreHandler)
	cron.Post("/season-reset", seasonHandler)
	cron.Get("/season-reset", seasonHandler)

	cron.Post("/season-reset/force", func(c *fiber.Ctx) error {
		return c.JSON(seasons.ForceSeasonReset())
	})
}
