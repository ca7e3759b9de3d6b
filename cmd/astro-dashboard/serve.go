package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	httpapi "github.com/i474232898/astro-dashboard/internal/api/http"
	"github.com/i474232898/astro-dashboard/internal/config"
	"github.com/i474232898/astro-dashboard/internal/dashboard"
	"github.com/i474232898/astro-dashboard/internal/nasa"
	"github.com/i474232898/astro-dashboard/internal/nasa/fetchers"
	"github.com/i474232898/astro-dashboard/internal/scheduler"
	"github.com/i474232898/astro-dashboard/internal/store"
	"github.com/i474232898/astro-dashboard/internal/user"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the dashboard HTTP service",
		Action: func(_ *cli.Context) error {
			// Load configuration.
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := store.Migrate(cfg.DatabasePath); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			db, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			// Shared HTTP client for outbound NASA calls. Each sector gets
			// one bounded best-effort attempt per dashboard request.
			httpClient := &http.Client{
				Timeout: cfg.FetchTimeout,
			}

			registry := nasa.NewRegistry(
				fetchers.NewAPOD(httpClient, cfg.NASAAPIKey),
				fetchers.NewMars(httpClient, cfg.NASAAPIKey),
				fetchers.NewNEO(httpClient, cfg.NASAAPIKey),
				fetchers.NewDONKI(httpClient, cfg.NASAAPIKey),
				fetchers.NewImages(httpClient),
			)
			assembler := dashboard.New(nasa.Definitions(), registry)

			users := user.NewService(db)

			// Server-side sessions persisted in SQLite.
			sessions := session.New(session.Config{
				Storage:        db.Sessions(),
				Expiration:     cfg.SessionTTL,
				KeyLookup:      "cookie:astrodash_session",
				CookieHTTPOnly: true,
				CookieSameSite: "Lax",
			})

			// Scheduler that periodically purges expired sessions.
			sched := scheduler.New(db.Sessions(), cfg.SessionPurgeInterval)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			// Basic app configuration
			app := fiber.New(fiber.Config{
				AppName:               "astro-dashboard",
				DisableStartupMessage: true,
				ReadTimeout:           10 * time.Second,
				WriteTimeout:          30 * time.Second,
				ErrorHandler: func(c *fiber.Ctx, err error) error {
					// Centralized error response
					code := fiber.StatusInternalServerError
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
					"service": "astro-dashboard",
				})
			})

			// API routes.
			httpapi.RegisterRoutes(app, httpapi.Deps{
				Users:       users,
				Preferences: db,
				Assembler:   assembler,
				Sessions:    sessions,
			})

			if cfg.MetricsAddr != "" {
				go serveMetrics(cfg.MetricsAddr)
			}

			// Start server with graceful shutdown
			go func() {
				if err := app.Listen(":" + cfg.Port); err != nil {
					log.WithFields(log.Fields{"error": err}).Error("fiber server stopped")
				}
			}()
			log.WithFields(log.Fields{"port": cfg.Port}).Info("astro-dashboard listening")

			// Wait for termination signal
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.WithFields(log.Fields{"error": err}).Error("error during shutdown")
			}
			return nil
		},
	}
}

// serveMetrics exposes the Prometheus registry on its own listener so the
// public API surface stays free of operational endpoints.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.WithFields(log.Fields{"addr": addr}).Info("metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithFields(log.Fields{"error": err}).Error("metrics server stopped")
	}
}
