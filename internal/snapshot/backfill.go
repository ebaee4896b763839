package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/domain"
)

// pageBodyLimit caps how much product-page HTML is read per backfill fetch.
const pageBodyLimit = 2 << 20

// backfillCategoryNames fetches the live product page once per distinct
// category id still missing a name and scans the HTML for the embedded
// category name next to that id. Fetch or parse failures leave the name
// unresolved; nothing here can fail the run.
func (b *Builder) backfillCategoryNames(ctx context.Context, products []domain.ProductSnapshot) {
	// One representative product link per unresolved category id.
	categoryLinks := map[string]string{}
	for _, p := range products {
		if p.CategoryID == nil || *p.CategoryID == "" {
			continue
		}
		if p.CategoryName != nil && *p.CategoryName != "" {
			continue
		}
		if p.ProductLink == "" {
			continue
		}
		if _, seen := categoryLinks[*p.CategoryID]; !seen {
			categoryLinks[*p.CategoryID] = p.ProductLink
		}
	}
	if len(categoryLinks) == 0 {
		return
	}

	names := map[string]string{}
	for categoryID, link := range categoryLinks {
		name := b.fetchCategoryName(ctx, link, categoryID)
		if name != "" {
			names[categoryID] = name
		}
	}
	b.logger.Info("category backfill finished",
		slog.Int("missing", len(categoryLinks)),
		slog.Int("resolved", len(names)),
	)

	for i := range products {
		p := &products[i]
		if p.CategoryID == nil || (p.CategoryName != nil && *p.CategoryName != "") {
			continue
		}
		if name, ok := names[*p.CategoryID]; ok {
			value := name
			p.CategoryName = &value
		}
	}
}

// fetchCategoryName GETs the product page and regex-searches for a category
// {name,id} pair matching the given id, in both plain and backslash-escaped
// JSON as embedded by the storefront renderer. Returns "" on any failure.
func (b *Builder) fetchCategoryName(ctx context.Context, productLink, categoryID string) string {
	if productLink == "" || categoryID == "" {
		return ""
	}

	resp, err := b.pages.Get(ctx, productLink)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return ""
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, pageBodyLimit))
	if err != nil {
		return ""
	}

	return scanCategoryName(string(html), categoryID)
}

func scanCategoryName(html, categoryID string) string {
	escapedID := regexp.QuoteMeta(categoryID)
	patterns := []string{
		fmt.Sprintf(`\\"category\\":\{\\"name\\":\\"(?P<name>[^"\\]+)\\"\s*,\s*\\"id\\":\\"%s\\"`, escapedID),
		fmt.Sprintf(`\\"category\\":\{\\"id\\":\\"%s\\"\s*,\s*\\"name\\":\\"(?P<name>[^"\\]+)\\"`, escapedID),
		fmt.Sprintf(`"category":\{"name":"(?P<name>[^"]+)"\s*,\s*"id":"%s"`, escapedID),
		fmt.Sprintf(`"category":\{"id":"%s"\s*,\s*"name":"(?P<name>[^"]+)"`, escapedID),
	}

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		match := re.FindStringSubmatch(html)
		if match == nil {
			continue
		}
		if name := strings.TrimSpace(match[re.SubexpIndex("name")]); name != "" {
			return name
		}
	}
	return ""
}
