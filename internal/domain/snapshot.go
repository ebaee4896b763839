// Package domain defines the normalized snapshot model written to disk.
package domain

import (
	"sort"
	"time"
)

// ReferenceURL points at the upstream API documentation recorded in every
// snapshot's source block.
const ReferenceURL = "https://dev.berdu.id/docs/reference"

// ResolvedVariation is a stock row's variation code resolved to display text.
type ResolvedVariation struct {
	VariationID string `json:"variation_id"`
	Name        string `json:"name"`
	OptionID    string `json:"option_id"`
	Value       string `json:"value"`
}

// StockRecord is one normalized stock row of a product. Stock is nil when
// the upstream value was missing or unparseable; an explicit zero is kept.
type StockRecord struct {
	StockID       *string             `json:"stock_id"`
	SKU           *string             `json:"sku"`
	Stock         *float64            `json:"stock"`
	WarehouseID   *string             `json:"warehouse_id"`
	VariationText string              `json:"variation_text"`
	Variations    []ResolvedVariation `json:"variations,omitempty"`
}

// ProductSnapshot is one retained product with its aggregated stock rows.
type ProductSnapshot struct {
	ProductID    string        `json:"product_id"`
	ProductName  string        `json:"product_name"`
	ProductSlug  *string       `json:"product_slug"`
	ProductLink  string        `json:"product_link"`
	ProductImage *string       `json:"product_image"`
	CategoryID   *string       `json:"category_id"`
	CategoryName *string       `json:"category_name"`
	StockCount   int           `json:"stock_count"`
	TotalStock   float64       `json:"total_stock"`
	Stocks       []StockRecord `json:"stocks"`
}

// Source identifies where a snapshot's data came from.
type Source struct {
	Website    string `json:"website"`
	APIBaseURL string `json:"api_base_url"`
	Reference  string `json:"reference"`
}

// Totals aggregates counts across every retained product.
type Totals struct {
	Products    int     `json:"products"`
	StockRows   int     `json:"stock_rows"`
	StockAmount float64 `json:"stock_amount"`
}

// Snapshot is the document root persisted to the output file.
type Snapshot struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Source      Source            `json:"source"`
	Totals      Totals            `json:"totals"`
	Products    []ProductSnapshot `json:"products"`
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SortProducts orders products by category name, then category id, then
// product name, ascending and case-sensitive. Missing values sort as the
// empty string, so uncategorized products come first.
func SortProducts(products []ProductSnapshot) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if an, bn := orEmpty(a.CategoryName), orEmpty(b.CategoryName); an != bn {
			return an < bn
		}
		if ai, bi := orEmpty(a.CategoryID), orEmpty(b.CategoryID); ai != bi {
			return ai < bi
		}
		return a.ProductName < b.ProductName
	})
}

// ComputeTotals sums product, stock-row and stock-amount figures across the
// given products.
func ComputeTotals(products []ProductSnapshot) Totals {
	totals := Totals{Products: len(products)}
	for _, p := range products {
		totals.StockRows += p.StockCount
		totals.StockAmount += p.TotalStock
	}
	return totals
}
