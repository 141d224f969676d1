package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"invitely/api-gateway/config"
	"invitely/api-gateway/handlers"
	"invitely/api-gateway/internal/aiclient"
	"invitely/api-gateway/internal/fields"
	"invitely/api-gateway/internal/mirror"
	"invitely/api-gateway/internal/render"
	"invitely/api-gateway/internal/store"
	"invitely/api-gateway/middleware"
)

// @title Invite Service API
// @version 1.0
// @description Creates shareable wedding invitation pages from form fields and four photos.
// @BasePath /api
func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel)

	app, cleanup, err := newApp(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to start invite service: %v", err)
	}
	defer cleanup()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("Shutting down invite service...")
		if err := app.Shutdown(); err != nil {
			logger.Errorf("Error during shutdown: %v", err)
		}
	}()

	logger.Infof("Starting invite service on port %s...", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}

// newApp builds every dependency once and wires the fiber app.
func newApp(cfg *config.Config, logger *logrus.Logger) (*fiber.App, func(), error) {
	defaults, err := fields.LoadDefaults(cfg.FieldDefaultsFile)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(cfg.StaticDir)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := render.New()
	if err != nil {
		return nil, nil, err
	}

	ai := aiclient.NewAIClient(aiclient.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	}, logger)
	if !ai.Enabled() {
		if cfg.PrefillRequired {
			return nil, nil, fmt.Errorf("prefill is required but %w", aiclient.ErrMissingAPIKey)
		}
		logger.Warn("OPENAI_API_KEY is not set; prefill requests will fail")
	}

	var m mirror.Mirror = mirror.Noop{}
	db, err := config.NewSupabaseClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if db != nil {
		m = mirror.NewSupabaseMirror(db, mirror.Options{
			Bucket: cfg.SupabaseBucket,
			Table:  cfg.SupabaseTable,
		}, logger)
		logger.Infof("Mirroring invites to Supabase bucket %q", cfg.SupabaseBucket)
	}

	h := handlers.NewApplicationHandler(defaults, st, renderer, ai, m, logger, aiclient.DefaultQuestions)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))

	handlers.SetupRoutes(app, h, cfg.StaticDir)

	cleanup := func() {
		if err := ai.Close(); err != nil {
			logger.Warnf("Error closing AI client: %v", err)
		}
	}
	return app, cleanup, nil
}
