package main

import (
	"fmt"
	"os"

	"adpulse/internal/delivery"
	"adpulse/internal/infrastructure"
	"adpulse/internal/insights"
	"adpulse/internal/usecase"
	"adpulse/pkg/config"
	"adpulse/pkg/logger"
	"adpulse/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("Starting adpulse server")

	m := metrics.New()

	source := infrastructure.NewPlatformClient(
		cfg.Platform.APIURL,
		cfg.Platform.RequestTimeout,
		cfg.Platform.RateLimitPerSecond,
		log,
		m,
	)
	cache := infrastructure.NewSnapshotRepository(cfg.Cache.TTL, log)

	classifier := insights.NewClassifier(insights.Thresholds{
		SpendFloor:      cfg.Health.SpendFloor,
		ClickFloor:      cfg.Health.ClickFloor,
		CTRFloor:        cfg.Health.CTRFloor,
		ImpressionFloor: cfg.Health.ImpressionFloor,
	})

	insightsService := usecase.NewInsightsService(source, cache, classifier, log, m)

	handlers := delivery.NewHTTPHandlers(insightsService, log, m)
	router := delivery.NewHTTPRouter(handlers, log, m)

	engine := router.SetupRoutes()

	log.WithField("port", cfg.Server.Port).Info("Listening")
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Fatal("Server exited")
	}
}
