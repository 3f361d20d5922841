package handlers

import (
	"fight-picks-system/middleware"
	"fight-picks-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupEventRoutes registers the public read surface and the
// user-scoped prediction routes.
func SetupEventRoutes(
	app *fiber.App,
	eventSync *services.EventSyncService,
	leaderboard *services.LeaderboardService,
	predictions *services.PredictionService,
) {
	// 🔓 Public routes
	app.Get("/event/upcoming", eventSync.GetUpcomingEvent)
	app.Get("/leaderboard", leaderboard.GetLeaderboard)

	// 🔐 User-scoped routes require propagated user context
	secured := app.Group("/", middleware.UserContextMiddleware())
	secured.Get("/predictions", predictions.GetUserPredictions)
	secured.Post("/predictions", predictions.SubmitPredictions)
}
