package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/app"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/config"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/pkg/logger"
)

// Exit codes: 0 success, 1 snapshot failure, 2 missing configuration.
const (
	exitFailure = 1
	exitConfig  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env file for local runs; absence is not an error.
	_ = godotenv.Load()

	output := flag.String("output", "", "Output JSON file path (overrides OUTPUT_JSON_PATH).")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return exitConfig
	}
	if *output != "" {
		cfg.OutputPath = *output
	}

	log := logger.WithRunID(logger.New("syncstok", cfg.LogLevel), uuid.New().String())
	log.Info("starting stock snapshot run",
		slog.String("api_base_url", cfg.BaseURL),
		slog.String("website", cfg.WebsiteName),
		slog.Int("max_workers", cfg.MaxWorkers),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.New(cfg, log).Run(ctx); err != nil {
		log.Error("snapshot run failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: failed to fetch stock: %v\n", err)
		return exitFailure
	}

	return 0
}
