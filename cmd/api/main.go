package main

import (
	"context"
	"flag"
	"fmt"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/internal/api/documents"
	"pdf-chunk-queue/internal/api/healthcheck"
	"pdf-chunk-queue/internal/api/ingest"
	"pdf-chunk-queue/internal/bootstrap"
	"pdf-chunk-queue/internal/middleware"
	"pdf-chunk-queue/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(err, "%v: cannot start", config.ModuleSetting)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	service, store, err := bootstrap.NewIngestService(context.Background(), cfg)
	if err != nil {
		logger.Fatal(err, "%v: cannot start", config.ModuleServer)
	}
	defer store.Close()

	app := fiber.New(fiber.Config{
		AppName:     cfg.Server.AppName,
		BodyLimit:   cfg.Server.BodyLimit,
		Concurrency: cfg.Server.Concurrency,
	})
	middleware.Register(app, cfg.Server.MaxConnections)

	// routes
	healthcheck.RegisterRoutes(app, healthcheck.NewHandler(store))
	ingest.RegisterRoutes(app, ingest.NewHandler(service))
	documents.RegisterRoutes(app, documents.NewHandler(store))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "%v: server error", config.ModuleServer)
	}
}
