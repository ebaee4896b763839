// Package snapshot orchestrates the fetch-normalize-aggregate pipeline and
// writes the resulting document to disk.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/domain"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/normalize"
)

// API is the slice of the Berdu client the builder needs.
type API interface {
	ListProducts(ctx context.Context, userID string) ([]map[string]any, error)
	GetProductStocks(ctx context.Context, userID, productID string) ([]map[string]any, error)
	GetProductDetail(ctx context.Context, userID, productID string) (map[string]any, error)
	GetProductVariations(ctx context.Context, userID, productID string) ([]map[string]any, error)
	BaseURL() string
}

// PageFetcher fetches public storefront pages for the category backfill.
type PageFetcher interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Options configures a build run.
type Options struct {
	UserID      string
	WebsiteName string
	MaxWorkers  int
}

// Builder assembles a full stock snapshot from the upstream API.
type Builder struct {
	api    API
	pages  PageFetcher
	opts   Options
	logger *slog.Logger

	now func() time.Time
}

// NewBuilder creates a snapshot builder. A worker count below 1 is clamped.
func NewBuilder(api API, pages PageFetcher, opts Options, logger *slog.Logger) *Builder {
	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}
	return &Builder{
		api:    api,
		pages:  pages,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Build pages through the product list, enriches every candidate under a
// bounded worker pool, backfills missing category names, and assembles the
// sorted snapshot document. Per-product failures are logged and skipped;
// only the initial listing can fail the build.
func (b *Builder) Build(ctx context.Context) (*domain.Snapshot, error) {
	items, err := b.api.ListProducts(ctx, b.opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	var candidates []map[string]any
	for _, item := range items {
		if !normalize.IsReadyName(normalize.ProductName(item)) {
			continue
		}
		if normalize.HiddenInList(item) {
			continue
		}
		candidates = append(candidates, item)
	}
	b.logger.Info("product list fetched",
		slog.Int("total", len(items)),
		slog.Int("candidates", len(candidates)),
	)

	products := b.enrichAll(ctx, candidates)

	b.backfillCategoryNames(ctx, products)

	domain.SortProducts(products)

	return &domain.Snapshot{
		GeneratedAt: b.now().UTC(),
		Source: domain.Source{
			Website:    b.opts.WebsiteName,
			APIBaseURL: b.api.BaseURL(),
			Reference:  domain.ReferenceURL,
		},
		Totals:   domain.ComputeTotals(products),
		Products: products,
	}, nil
}

type enrichResult struct {
	productID string
	product   *domain.ProductSnapshot
	err       error
}

// enrichAll fans candidates out to a bounded worker pool. Results are
// consumed as they complete; output order is settled later by the sort.
func (b *Builder) enrichAll(ctx context.Context, candidates []map[string]any) []domain.ProductSnapshot {
	jobs := make(chan map[string]any)
	results := make(chan enrichResult)

	var wg sync.WaitGroup
	for i := 0; i < b.opts.MaxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- b.enrichOne(ctx, item)
			}
		}()
	}

	go func() {
		for _, item := range candidates {
			jobs <- item
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	products := make([]domain.ProductSnapshot, 0, len(candidates))
	for result := range results {
		if result.err != nil {
			b.logger.Warn("skip product",
				slog.String("product_id", result.productID),
				slog.String("error", result.err.Error()),
			)
			continue
		}
		if result.product != nil {
			products = append(products, *result.product)
		}
	}
	return products
}

// enrichOne builds one product snapshot: detail, variation definitions,
// stock rows, per-row variation resolution, and the per-product total. A nil
// product with a nil error means the product was filtered, not failed.
func (b *Builder) enrichOne(ctx context.Context, product map[string]any) (result enrichResult) {
	result.productID = normalize.ProductID(product)

	defer func() {
		if r := recover(); r != nil {
			result.product = nil
			result.err = fmt.Errorf("panic during enrichment: %v", r)
		}
	}()

	if result.productID == "" {
		return result
	}

	detail, err := b.api.GetProductDetail(ctx, b.opts.UserID, result.productID)
	if err != nil {
		result.err = err
		return result
	}
	if normalize.HiddenInDetail(detail) {
		return result
	}

	variationDefs, err := b.api.GetProductVariations(ctx, b.opts.UserID, result.productID)
	if err != nil {
		result.err = err
		return result
	}
	lookup := normalize.VariationLookup(variationDefs)

	rows, err := b.api.GetProductStocks(ctx, b.opts.UserID, result.productID)
	if err != nil {
		result.err = err
		return result
	}

	stocks := make([]domain.StockRecord, 0, len(rows))
	total := 0.0
	for _, row := range rows {
		resolved := normalize.ResolveVariations(row["variations"], lookup)

		var stock *float64
		if n, ok := normalize.Number(row["stock"]); ok {
			total += n
			value := n
			stock = &value
		}

		stocks = append(stocks, domain.StockRecord{
			StockID:       textField(row, "id", "stock_id"),
			SKU:           textField(row, "sku"),
			Stock:         stock,
			WarehouseID:   textField(row, "warehouse_id"),
			VariationText: normalize.VariationText(resolved),
			Variations:    resolved,
		})
	}

	categoryID, categoryName := normalize.Category(detail)

	var slug *string
	if s, ok := detail["slug"].(string); ok {
		slug = &s
	}

	result.product = &domain.ProductSnapshot{
		ProductID:    result.productID,
		ProductName:  normalize.ProductName(product),
		ProductSlug:  slug,
		ProductLink:  normalize.ProductLink(b.opts.WebsiteName, result.productID, detail),
		ProductImage: normalize.ProductImage(detail, variationDefs),
		CategoryID:   categoryID,
		CategoryName: categoryName,
		StockCount:   len(stocks),
		TotalStock:   total,
		Stocks:       stocks,
	}
	return result
}

// textField stringifies the first key with a non-empty scalar value, or nil.
func textField(m map[string]any, keys ...string) *string {
	for _, key := range keys {
		if text := normalize.Text(m[key]); text != "" {
			return &text
		}
	}
	return nil
}
