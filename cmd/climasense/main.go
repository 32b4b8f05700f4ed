package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/climasense/climasense/internal/api/http"
	"github.com/climasense/climasense/internal/config"
	"github.com/climasense/climasense/internal/globalaqi"
	"github.com/climasense/climasense/internal/scheduler"
	"github.com/climasense/climasense/internal/settings"
	"github.com/climasense/climasense/internal/store"
	"github.com/climasense/climasense/internal/weather"
	"github.com/climasense/climasense/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// User settings with env-provided credential default.
	userSettings, err := settings.NewStore(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}
	if !settings.ValidateCredential(cfg.Credential) && userSettings.Credential() == "" {
		log.Printf("WARN: no OpenWeatherMap API key configured; primary weather requests will fail")
	}

	// Primary weather + pollution client and the dashboard pipeline.
	openWeather := providers.NewOpenWeatherClient(httpClient)
	service := weather.NewService(openWeather, openWeather, weather.DefaultFixup())

	// Global AQI source with explicit offline fallback, refreshed in
	// the background into the latest-snapshot store.
	global := globalaqi.NewClient(httpClient, cfg.WAQIToken, globalaqi.DemoSource{})
	snapshots := store.NewSnapshotStore()

	sched := scheduler.New(global, snapshots, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "climasense",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := httpapi.StatusForError(err)
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "climasense",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, userSettings, global, snapshots)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
