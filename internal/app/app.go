// Package app wires the configuration, API client and snapshot pipeline
// together and runs one fetch cycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/berdu"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/config"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/snapshot"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/pkg/httpclient"
)

// App holds the wired dependencies for a single snapshot run.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	builder *snapshot.Builder
}

// New creates the application with all dependencies wired. API calls go
// through a circuit breaker; the public page fetches of the category
// backfill use the bare pooled client since they hit the storefront, not
// the API host.
func New(cfg *config.Config, logger *slog.Logger) *App {
	transportCfg := httpclient.DefaultConfig()
	transportCfg.Timeout = cfg.Timeout
	transport := httpclient.New(transportCfg)

	breaker := httpclient.NewCircuitBreakerClient(
		transport,
		httpclient.DefaultCircuitBreakerConfig("berdu-api"),
		logger,
	)

	client := berdu.NewClient(cfg.BaseURL, cfg.AppID, cfg.AppSecret, breaker)

	builder := snapshot.NewBuilder(client, transport, snapshot.Options{
		UserID:      cfg.UserID,
		WebsiteName: cfg.WebsiteName,
		MaxWorkers:  cfg.MaxWorkers,
	}, logger)

	return &App{cfg: cfg, logger: logger, builder: builder}
}

// Run builds the snapshot, writes it to the configured output path, and
// reports the result. Any returned error means the run produced no output.
func (a *App) Run(ctx context.Context) error {
	snap, err := a.builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("build snapshot: %w", err)
	}

	if err := snapshot.WriteFile(a.cfg.OutputPath, snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	a.logger.Info("snapshot written",
		slog.String("path", a.cfg.OutputPath),
		slog.Int("products", snap.Totals.Products),
		slog.Int("stock_rows", snap.Totals.StockRows),
	)
	fmt.Fprintf(os.Stdout, "wrote %s | products=%d rows=%d\n",
		a.cfg.OutputPath, snap.Totals.Products, snap.Totals.StockRows)

	return nil
}
