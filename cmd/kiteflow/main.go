package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/kiteflow/internal/api/http"
	"github.com/i474232898/kiteflow/internal/config"
	"github.com/i474232898/kiteflow/internal/observability"
	"github.com/i474232898/kiteflow/internal/render"
	"github.com/i474232898/kiteflow/internal/scheduler"
	"github.com/i474232898/kiteflow/internal/store"
	"github.com/i474232898/kiteflow/internal/weather"
	"github.com/i474232898/kiteflow/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Shared HTTP settings for outbound calls.
	httpCfg := providers.HTTPClientConfig{
		Client: &http.Client{Timeout: cfg.HTTPTimeout},
		Backoff: providers.BackoffConfig{
			MaxRetries:      cfg.UpstreamMaxRetries,
			InitialInterval: providers.DefaultBackoff.InitialInterval,
			MaxInterval:     providers.DefaultBackoff.MaxInterval,
		},
		UserAgent: cfg.UserAgent,
		Metrics:   metrics,
	}

	// Geocoder: Google when a key is configured, Nominatim otherwise.
	var geo weather.Geocoder
	if cfg.GoogleGeocoderAPIKey != "" {
		geo = providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
		log.Info("google geocoding enabled")
	} else {
		geo = providers.NewNominatimGeocoder(httpCfg, cfg.NominatimBaseURL, log)
	}
	geo = providers.NewCachedGeocoder(geo, cfg.GeocodeCacheSize, metrics)

	nws := providers.NewNWSProvider(httpCfg, cfg.NWSBaseURL, log)
	tides := providers.NewNOAATideProvider(httpCfg, providers.NOAATideConfig{
		BaseURL:     cfg.NOAABaseURL,
		StationID:   cfg.TideStationID,
		Location:    cfg.TideTimezone,
		Application: "kiteflow",
	})

	memStore := store.NewMemoryStore(cfg.StoreMaxHistory)

	service := weather.NewService(weather.ServiceConfig{
		Geocoder:        geo,
		Weather:         nws,
		Tides:           tides,
		Store:           memStore,
		Clock:           clock,
		Logger:          log,
		Metrics:         metrics,
		DefaultLocation: cfg.DefaultLocation,
		DefaultRider:    cfg.DefaultRider,
		ForceSynthetic:  cfg.ForceSynthetic,
	})
	if cfg.ForceSynthetic {
		log.Warn("live weather and tide sources disabled, serving synthetic data")
	}

	renderer, err := render.New()
	if err != nil {
		log.Error("failed to build renderer", "error", err)
		os.Exit(1)
	}

	// Scheduler that performs the initial load and periodic refreshes.
	sched := scheduler.New(service, cfg.RefreshInterval, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "kiteflow",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2*cfg.HTTPTimeout + 10*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowMethods: "GET,HEAD,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "kiteflow",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service, renderer)

	go func() {
		log.Info("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	log.Info("shutdown complete")
}
