package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lodnet/luach/internal/aggregate"
	"github.com/lodnet/luach/internal/api"
	"github.com/lodnet/luach/internal/cache"
	"github.com/lodnet/luach/internal/config"
	"github.com/lodnet/luach/internal/drive"
	"github.com/lodnet/luach/internal/logger"
	"github.com/lodnet/luach/internal/middleware"
	"github.com/lodnet/luach/internal/scrape"
	"github.com/lodnet/luach/internal/store"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log := logger.Get()
	log.Info().Msg("Starting application...")

	submissions, err := newSubmissionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize submission store")
	}
	defer func() {
		if err := submissions.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing submission store")
		}
	}()

	driveClient := drive.New(cfg)
	scraper := scrape.New()
	sessions := store.NewSessionStore(cfg.SessionTTL)

	// News datasets cache each scraper independently; their Get funcs double
	// as extra sources for the combined listings build.
	chabadNews := cache.NewDataset("chabad-news", cfg.NewsTTL, scraper.ChabadNews)
	economyNews := cache.NewDataset("economy-news", cfg.NewsTTL, scraper.EconomyNews)
	realEstate := cache.NewDataset("real-estate", cfg.NewsTTL, scraper.RealEstate)

	agg := aggregate.New(driveClient, chabadNews.Get, economyNews.Get, realEstate.Get)

	data := api.Datasets{
		Articles:      cache.NewDataset("articles", cfg.ArticlesTTL, agg.BuildListings),
		BannerAds:     cache.NewDataset("banner-ads", cfg.AdsTTL, agg.BuildBannerAds),
		PageAds:       cache.NewDataset("page-ads", cfg.AdsTTL, agg.BuildPageAds),
		Professionals: cache.NewDataset("professionals", cfg.ProfessionalsTTL, agg.BuildProfessionals),
		ChabadNews:    chabadNews,
		EconomyNews:   economyNews,
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	handlers := api.NewHandlers(cfg, data, driveClient, submissions, sessions)
	api.SetupRoutes(app, handlers, sessions)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newSubmissionStore(cfg *config.Config) (store.SubmissionStore, error) {
	if cfg.RedisURL != "" {
		logger.Get().Info().Msg("Using Redis submission store")
		return store.NewRedisStore(cfg.RedisURL)
	}
	return store.NewFileStore(cfg.SubmissionsFile)
}
