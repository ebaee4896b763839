package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/domain"
)

func sampleSnapshot() *domain.Snapshot {
	stock := 5.0
	return &domain.Snapshot{
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Source: domain.Source{
			Website:    "zzhomey.com",
			APIBaseURL: "https://api.berdu.id/v0.0",
			Reference:  domain.ReferenceURL,
		},
		Totals: domain.Totals{Products: 1, StockRows: 1, StockAmount: 5},
		Products: []domain.ProductSnapshot{
			{
				ProductID:   "A1",
				ProductName: "[Ready] Widget",
				ProductLink: "https://zzhomey.com/product/A1",
				StockCount:  1,
				TotalStock:  5,
				Stocks: []domain.StockRecord{
					{Stock: &stock, VariationText: ""},
				},
			},
		},
	}
}

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "data", "stock.json")

	require.NoError(t, WriteFile(path, sampleSnapshot()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestWriteFile_IndentedWithTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.json")

	require.NoError(t, WriteFile(path, sampleSnapshot()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.True(t, strings.HasSuffix(content, "\n"), "file must end with a newline")
	assert.False(t, strings.HasSuffix(content, "\n\n"), "exactly one trailing newline")
	assert.Contains(t, content, "\n  \"source\"", "two-space indentation")
}

func TestWriteFile_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.json")
	snap := sampleSnapshot()

	require.NoError(t, WriteFile(path, snap))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "2026-08-30T12:00:00Z", decoded["generated_at"])
	totals := decoded["totals"].(map[string]any)
	assert.Equal(t, float64(1), totals["products"])
	assert.Equal(t, float64(5), totals["stock_amount"])

	products := decoded["products"].([]any)
	require.Len(t, products, 1)
	product := products[0].(map[string]any)
	assert.Equal(t, "A1", product["product_id"])
	// Optional fields are emitted as explicit nulls, not omitted.
	assert.Contains(t, product, "category_name")
	assert.Nil(t, product["category_name"])
}

func TestWriteFile_DeterministicBytes(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	require.NoError(t, WriteFile(first, sampleSnapshot()))
	require.NoError(t, WriteFile(second, sampleSnapshot()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestWriteFile_NoHTMLEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.json")
	snap := sampleSnapshot()
	snap.Products[0].ProductName = "[Ready] Cup & Saucer"

	require.NoError(t, WriteFile(path, snap))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Cup & Saucer")
	assert.NotContains(t, string(raw), `\u0026`)
}
