package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fight-picks-system/handlers"
	"fight-picks-system/models"
	"fight-picks-system/scraper"
	"fight-picks-system/services"
	"fight-picks-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID, X-Cron-Secret",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 archive client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Fight{},
		&models.Prediction{},
		&models.AppState{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	onlyNumbered := strings.ToLower(os.Getenv("ONLY_NUMBERED")) != "false"
	ufcScraper := scraper.NewUFCStatsScraper(scraper.NewBrowserFetcher(), onlyNumbered)

	seasonService := services.NewSeasonService(db)
	eventSyncService := services.NewEventSyncService(db, ufcScraper)
	scoringService := services.NewScoringService(db, ufcScraper, seasonService)
	leaderboardService := services.NewLeaderboardService(db, seasonService)
	predictionService := services.NewPredictionService(db)

	sched, err := services.StartSchedulers(seasonService, eventSyncService, scoringService)
	if err != nil {
		log.Fatal("failed to start schedulers:", err)
	}
	defer func() { _ = sched.Shutdown() }()

	handlers.SetupEventRoutes(app, eventSyncService, leaderboardService, predictionService)
	handlers.SetupCronRoutes(app, seasonService, eventSyncService, scoringService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ Schedulers running in %s (Mon sync, Sun scoring, yearly season check)", utils.BrusselsTZ)
	log.Printf("✅ Numbered-events-only filter: %t", onlyNumbered)
	if utils.ArchiveEnabled() {
		log.Println("✅ Raw HTML archival to R2 enabled")
	}

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
