package normalize

import "strings"

// WebsiteBaseURL normalizes a configured website name into a base URL,
// prefixing https:// when no scheme is given and stripping a trailing slash.
func WebsiteBaseURL(websiteName string) string {
	text := strings.TrimRight(strings.TrimSpace(websiteName), "/")
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return text
	}
	return "https://" + text
}

// ProductLink builds the public storefront URL for a product. An explicit
// URL field from the detail payload wins (absolute used as-is, otherwise
// joined to the base), then "{base}/product/{slug}", then
// "{base}/product/{product_id}".
func ProductLink(websiteName, productID string, detail map[string]any) string {
	base := WebsiteBaseURL(websiteName)

	for _, key := range []string{"url", "link", "permalink", "product_url", "web_url"} {
		raw, ok := detail[key].(string)
		if !ok {
			continue
		}
		candidate := strings.TrimSpace(raw)
		if candidate == "" {
			continue
		}
		if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
			return candidate
		}
		if strings.HasPrefix(candidate, "/") {
			return base + candidate
		}
		return base + "/" + strings.TrimLeft(candidate, "/")
	}

	if slug, ok := detail["slug"].(string); ok && strings.TrimSpace(slug) != "" {
		return base + "/product/" + strings.TrimSpace(slug)
	}

	return base + "/product/" + productID
}

// ProductImage picks the product image: the first non-empty entry of a
// detail-level images list (or a bare string), falling back to the first
// non-empty option image found while scanning variation definitions in order.
func ProductImage(detail map[string]any, variationDefs []map[string]any) *string {
	switch images := detail["images"].(type) {
	case []any:
		for _, raw := range images {
			if s, ok := raw.(string); ok {
				if image := strings.TrimSpace(s); image != "" {
					return &image
				}
			}
		}
	case string:
		if image := strings.TrimSpace(images); image != "" {
			return &image
		}
	}

	for _, def := range variationDefs {
		options, ok := def["options"].([]any)
		if !ok {
			continue
		}
		for _, rawOption := range options {
			option, ok := rawOption.(map[string]any)
			if !ok {
				continue
			}
			if s, ok := option["image"].(string); ok {
				if image := strings.TrimSpace(s); image != "" {
					return &image
				}
			}
		}
	}
	return nil
}
