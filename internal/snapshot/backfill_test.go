package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// HTML Scan Tests
// ============================================================================

func TestScanCategoryName_PlainJSON(t *testing.T) {
	html := `<script>window.__DATA__={"product":{"category":{"name":"Bedroom","id":"cat-1"}}}</script>`

	assert.Equal(t, "Bedroom", scanCategoryName(html, "cat-1"))
}

func TestScanCategoryName_PlainJSONIDFirst(t *testing.T) {
	html := `{"category":{"id":"cat-1","name":"Bedroom"}}`

	assert.Equal(t, "Bedroom", scanCategoryName(html, "cat-1"))
}

func TestScanCategoryName_EscapedJSON(t *testing.T) {
	html := `<script>var s="{\"category\":{\"name\":\"Kitchen\",\"id\":\"cat-2\"}}"</script>`

	assert.Equal(t, "Kitchen", scanCategoryName(html, "cat-2"))
}

func TestScanCategoryName_EscapedJSONIDFirst(t *testing.T) {
	html := `var s="{\"category\":{\"id\":\"cat-2\",\"name\":\"Kitchen\"}}"`

	assert.Equal(t, "Kitchen", scanCategoryName(html, "cat-2"))
}

func TestScanCategoryName_WrongIDNoMatch(t *testing.T) {
	html := `{"category":{"name":"Bedroom","id":"cat-1"}}`

	assert.Equal(t, "", scanCategoryName(html, "cat-9"))
}

func TestScanCategoryName_RegexMetacharsInID(t *testing.T) {
	html := `{"category":{"name":"Odd","id":"cat.1+2"}}`

	assert.Equal(t, "Odd", scanCategoryName(html, "cat.1+2"))
}

// ============================================================================
// Backfill Pass Tests
// ============================================================================

func backfillFixture(api *mockAPI) {
	api.On("ListProducts", mock.Anything, "u-1").Return([]map[string]any{
		{"id": "P1", "name": "[Ready] One"},
		{"id": "P2", "name": "[Ready] Two"},
		{"id": "P3", "name": "[Ready] Three"},
	}, nil)
	// P1 and P2 share a category that has no name; P3's category is named.
	expectEnrichment(api, "P1", map[string]any{"category_id": "cat-1"}, nil, nil)
	expectEnrichment(api, "P2", map[string]any{"category_id": "cat-1"}, nil, nil)
	expectEnrichment(api, "P3", map[string]any{"category_id": "cat-2", "category_name": "Named"}, nil, nil)
}

func TestBuild_BackfillFillsMissingNames(t *testing.T) {
	api := &mockAPI{}
	backfillFixture(api)
	pages := &stubPages{html: `{"category":{"name":"Scraped","id":"cat-1"}}`}

	snap, err := newTestBuilder(api, pages, 2).Build(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Products, 3)

	byID := map[string]int{}
	for i, p := range snap.Products {
		byID[p.ProductID] = i
	}
	for _, id := range []string{"P1", "P2"} {
		name := snap.Products[byID[id]].CategoryName
		require.NotNil(t, name, "product %s", id)
		assert.Equal(t, "Scraped", *name, "product %s", id)
	}
	assert.Equal(t, "Named", *snap.Products[byID["P3"]].CategoryName)
}

func TestBuild_BackfillOneFetchPerCategory(t *testing.T) {
	api := &mockAPI{}
	backfillFixture(api)
	pages := &stubPages{html: `{"category":{"name":"Scraped","id":"cat-1"}}`}

	_, err := newTestBuilder(api, pages, 2).Build(context.Background())

	require.NoError(t, err)
	// cat-2 already has a name; only cat-1 needs one page fetch.
	assert.Len(t, pages.calls, 1)
}

func TestBuild_BackfillFailureLeavesNameUnresolved(t *testing.T) {
	api := &mockAPI{}
	backfillFixture(api)
	pages := &stubPages{err: errors.New("page unreachable")}

	snap, err := newTestBuilder(api, pages, 2).Build(context.Background())

	require.NoError(t, err)
	for _, p := range snap.Products {
		if p.ProductID == "P3" {
			continue
		}
		assert.Nil(t, p.CategoryName, "product %s", p.ProductID)
	}
}

func TestBuild_BackfillHTTPErrorIgnored(t *testing.T) {
	api := &mockAPI{}
	backfillFixture(api)
	pages := &stubPages{status: 404, html: "not found"}

	snap, err := newTestBuilder(api, pages, 2).Build(context.Background())

	require.NoError(t, err)
	for _, p := range snap.Products {
		if p.ProductID != "P3" {
			assert.Nil(t, p.CategoryName)
		}
	}
}

func TestBuild_BackfillNotAttemptedWithoutCategoryID(t *testing.T) {
	api := &mockAPI{}
	api.On("ListProducts", mock.Anything, "u-1").Return([]map[string]any{
		{"id": "P1", "name": "[Ready] One"},
	}, nil)
	expectEnrichment(api, "P1", map[string]any{}, nil, nil)
	pages := &stubPages{}

	_, err := newTestBuilder(api, pages, 1).Build(context.Background())

	require.NoError(t, err)
	assert.Empty(t, pages.calls)
}
