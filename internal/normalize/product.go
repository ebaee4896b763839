package normalize

import (
	"strings"
	"unicode"
)

// DefaultProductName is used for products that carry no usable name field.
const DefaultProductName = "Tanpa Nama"

// readyPrefix marks products the storefront considers ready stock.
const readyPrefix = "[ready]"

// ProductID resolves a product identifier by probing id, product_id and
// productId in order. Returns "" when no candidate holds a non-empty string.
func ProductID(product map[string]any) string {
	return stringField(product, "id", "product_id", "productId")
}

// ProductName resolves a product name by probing name, title and
// product_name in order, defaulting to DefaultProductName.
func ProductName(product map[string]any) string {
	if name := stringField(product, "name", "title", "product_name"); name != "" {
		return name
	}
	return DefaultProductName
}

// IsReadyName reports whether the name, after left-trimming whitespace and
// lowercasing, starts with the "[ready]" tag.
func IsReadyName(name string) bool {
	trimmed := strings.TrimLeftFunc(name, unicode.IsSpace)
	return strings.HasPrefix(strings.ToLower(trimmed), readyPrefix)
}

var hiddenBoolKeys = []string{"hidden", "is_hidden", "isHidden", "hide", "isHide"}

var listHiddenTerms = map[string]struct{}{
	"hide":     {},
	"hidden":   {},
	"draft":    {},
	"private":  {},
	"archive":  {},
	"archived": {},
	"inactive": {},
	"nonaktif": {},
}

var detailHiddenTerms = map[string]struct{}{
	"hide":        {},
	"hidden":      {},
	"draft":       {},
	"private":     {},
	"archive":     {},
	"archived":    {},
	"inactive":    {},
	"nonaktif":    {},
	"deleted":     {},
	"unpublished": {},
}

// TagTexts flattens a raw tags value into lowercase trimmed strings. Tags
// arrive either as a list of strings, a list of mappings (probed at name,
// tag, value, id), or a bare string.
func TagTexts(raw any) []string {
	var tags []string
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			switch t := item.(type) {
			case string:
				if text := strings.ToLower(strings.TrimSpace(t)); text != "" {
					tags = append(tags, text)
				}
			case map[string]any:
				for _, key := range []string{"name", "tag", "value", "id"} {
					if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
						tags = append(tags, strings.ToLower(strings.TrimSpace(s)))
					}
				}
			}
		}
	case string:
		if text := strings.ToLower(strings.TrimSpace(v)); text != "" {
			tags = append(tags, text)
		}
	}
	return tags
}

func anyHiddenBool(m map[string]any) bool {
	for _, key := range hiddenBoolKeys {
		if m[key] == true {
			return true
		}
	}
	return false
}

func anyHiddenTag(m map[string]any, terms map[string]struct{}) bool {
	for _, tag := range TagTexts(m["tags"]) {
		if _, ok := terms[tag]; ok {
			return true
		}
	}
	return false
}

func anyHiddenStatus(m map[string]any, terms map[string]struct{}, keys ...string) bool {
	for _, key := range keys {
		if raw, ok := m[key].(string); ok {
			if _, hidden := terms[strings.ToLower(strings.TrimSpace(raw))]; hidden {
				return true
			}
		}
	}
	return false
}

// HiddenInList reports whether a product list item should be excluded: an
// explicit hidden flag, a hidden tag, or a hidden status/visibility value.
func HiddenInList(product map[string]any) bool {
	if anyHiddenBool(product) {
		return true
	}
	if anyHiddenTag(product, listHiddenTerms) {
		return true
	}
	return anyHiddenStatus(product, listHiddenTerms, "status", "publish_status", "visibility", "state")
}

// HiddenInDetail reports whether a product detail payload marks the product
// hidden. Stricter than the list check: an explicit "not published" boolean
// counts, a wider term vocabulary applies, and the type field is probed too.
func HiddenInDetail(detail map[string]any) bool {
	if anyHiddenBool(detail) {
		return true
	}
	if detail["published"] == false || detail["isPublished"] == false {
		return true
	}
	if anyHiddenStatus(detail, detailHiddenTerms, "status", "publish_status", "visibility", "state", "type") {
		return true
	}
	return anyHiddenTag(detail, detailHiddenTerms)
}
