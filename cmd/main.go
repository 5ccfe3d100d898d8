package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/spacetraveling/internal/api"
	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/metrics"
	"github.com/bilgisen/spacetraveling/internal/views"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: cfg.LogFile,
		Pretty: cfg.Env == "development",
	}); err != nil {
		logger.Get().Warn().Err(err).Msg("Falling back to stdout logging")
	}

	log := logger.Get()
	log.Info().
		Str("env", cfg.Env).
		Str("endpoint", cfg.PrismicEndpoint).
		Str("post_type", cfg.PostType).
		Int("page_size", cfg.PageSize).
		Msg("Starting application...")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	fetcher, err := content.NewFetcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create content client")
	}
	resolver := content.NewResolver(fetcher.WithRecorder(recorder), content.NewParser(cfg.Locale), cfg.PostType, cfg.PageSize)

	handlers := api.NewHandlers(resolver, views.New(cfg.Site, cfg.Locale), recorder)
	app := api.NewApp(handlers, api.Options{
		Registry:     reg,
		MetricsToken: cfg.MetricsToken,
		Timeout:      cfg.HTTPTimeout,
	})

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
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
