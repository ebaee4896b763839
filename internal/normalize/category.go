package normalize

import "strings"

// Category resolves the category id and name from a product detail payload.
// Flat category_id/categoryId and category_name/categoryName fields win,
// then a nested category object (id/category_id, name/title), then a bare
// string category field which fills the name only. Either result may be nil
// when nothing usable is present.
func Category(detail map[string]any) (categoryID, categoryName *string) {
	for _, key := range []string{"category_id", "categoryId"} {
		if text := Text(detail[key]); text != "" {
			categoryID = &text
			break
		}
	}

	for _, key := range []string{"category_name", "categoryName"} {
		if raw, ok := detail[key].(string); ok {
			if text := strings.TrimSpace(raw); text != "" {
				categoryName = &text
				break
			}
		}
	}

	switch rawCategory := detail["category"].(type) {
	case map[string]any:
		if categoryID == nil {
			for _, key := range []string{"id", "category_id"} {
				if text := Text(rawCategory[key]); text != "" {
					categoryID = &text
					break
				}
			}
		}
		if categoryName == nil {
			for _, key := range []string{"name", "title"} {
				if raw, ok := rawCategory[key].(string); ok {
					if text := strings.TrimSpace(raw); text != "" {
						categoryName = &text
						break
					}
				}
			}
		}
	case string:
		if categoryName == nil {
			if text := strings.TrimSpace(rawCategory); text != "" {
				categoryName = &text
			}
		}
	}

	return categoryID, categoryName
}
