package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/internal/bootstrap"
	"pdf-chunk-queue/pkg/logger"
)

// Ingests a single local document into the queue without the HTTP layer.
func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	filePath := flag.String("file", "", "document to ingest")
	timeout := flag.Duration("timeout", 5*time.Minute, "deadline for the whole ingestion")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: pdf-chunk-queue -file <document.pdf> [-config config.yaml]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(err, "%v: cannot start", config.ModuleSetting)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	data, err := os.ReadFile(*filePath)
	if err != nil {
		logger.Fatal(err, "read %s", *filePath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	service, store, err := bootstrap.NewIngestService(ctx, cfg)
	if err != nil {
		logger.Fatal(err, "%v: cannot start", config.ModuleIngest)
	}
	defer store.Close()

	summary, err := service.IngestDocument(ctx, filepath.Base(*filePath), data)
	if err != nil {
		logger.Error(err, "%v: ingestion failed", config.ModuleIngest)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("document %d: %s, %d pages, %d chunks, %d characters\n",
		summary.DocumentID, summary.Filename, summary.TotalPages, summary.TotalChunks, summary.TotalChars)
}
