package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/steodhiambo/movie-discovery-app/internal/config"
	"github.com/steodhiambo/movie-discovery-app/internal/database"
	"github.com/steodhiambo/movie-discovery-app/internal/handler"
	"github.com/steodhiambo/movie-discovery-app/internal/omdb"
	"github.com/steodhiambo/movie-discovery-app/internal/repository"
	"github.com/steodhiambo/movie-discovery-app/internal/service"
	"github.com/steodhiambo/movie-discovery-app/internal/tmdb"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Upstream provider clients
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.RPS)
	var omdbClient *omdb.Client
	if cfg.OMDB.APIKey != "" {
		omdbClient = omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL, cfg.OMDB.RPS)
	} else {
		slog.Warn("OMDB_API_KEY not set, running with primary-only enrichment")
	}

	// Initialize layers
	watchlistRepo := repository.NewWatchlistRepository(db)
	catalogSvc := service.NewCatalogService(tmdbClient, omdbClient, rdb, cfg.Recommend.EnrichWorkers)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, rdb)
	recommendSvc := service.NewRecommendationService(catalogSvc, watchlistRepo, rdb, cfg.Recommend)

	catalogH := handler.NewCatalogHandler(catalogSvc)
	watchlistH := handler.NewWatchlistHandler(watchlistSvc)
	recommendH := handler.NewRecommendationHandler(recommendSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Discovery",
		ServerHeader: "Movie-Discovery",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", catalogH.Health)
	api.Get("/movies", catalogH.Discover)
	api.Get("/movies/trending", catalogH.Trending)
	api.Get("/movies/search", catalogH.Search)
	api.Get("/movies/:kind/:id", catalogH.GetDetail)
	api.Get("/watchlist", watchlistH.List)
	api.Post("/watchlist", watchlistH.Add)
	api.Delete("/watchlist/:kind/:id", watchlistH.Remove)
	api.Patch("/watchlist/:kind/:id/watched", watchlistH.ToggleWatched)
	api.Get("/recommendations", recommendH.GetRecommendations)
	api.Get("/preferences", recommendH.GetPreferences)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie discovery service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie discovery service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
