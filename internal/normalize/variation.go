package normalize

import (
	"sort"
	"strings"

	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/domain"
)

// VariationDef is one entry of a product's variation lookup: the variation
// display name and a map of option id to option display name.
type VariationDef struct {
	Name    string
	Options map[string]string
}

// VariationLookup builds the per-product lookup table from the raw variation
// definitions returned by the variations endpoint. Definitions without an id
// are dropped; missing names fall back to "var_{id}" and missing option
// names fall back to the option id.
func VariationLookup(defs []map[string]any) map[string]VariationDef {
	lookup := make(map[string]VariationDef, len(defs))
	for _, def := range defs {
		varID := Text(def["id"])
		if varID == "" {
			continue
		}
		varName := Text(def["name"])
		if varName == "" {
			varName = "var_" + varID
		}
		options := map[string]string{}
		if rawOptions, ok := def["options"].([]any); ok {
			for _, rawOption := range rawOptions {
				option, ok := rawOption.(map[string]any)
				if !ok {
					continue
				}
				optionID := Text(option["id"])
				if optionID == "" {
					continue
				}
				optionName := Text(option["name"])
				if optionName == "" {
					optionName = optionID
				}
				options[optionID] = optionName
			}
		}
		lookup[varID] = VariationDef{Name: varName, Options: options}
	}
	return lookup
}

// ResolveVariations turns a stock row's raw variations value into resolved
// display rows, sorted by variation id ascending. The raw value is either a
// mapping of variation id to option id, or a list of records probed at
// id/variation_id and option_id/value/id_value. Unresolved names default to
// "var_{id}" and unresolved option values to the raw option id.
func ResolveVariations(raw any, lookup map[string]VariationDef) []domain.ResolvedVariation {
	type pair struct{ varID, optionID string }
	var pairs []pair

	switch v := raw.(type) {
	case map[string]any:
		for key, value := range v {
			varID := strings.TrimSpace(key)
			optionID := Text(value)
			if varID != "" && optionID != "" {
				pairs = append(pairs, pair{varID, optionID})
			}
		}
	case []any:
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			varID := Text(m["id"])
			if varID == "" {
				varID = Text(m["variation_id"])
			}
			optionID := Text(m["option_id"])
			if optionID == "" {
				optionID = Text(m["value"])
			}
			if optionID == "" {
				optionID = Text(m["id_value"])
			}
			if varID != "" && optionID != "" {
				pairs = append(pairs, pair{varID, optionID})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].varID < pairs[j].varID })

	resolved := make([]domain.ResolvedVariation, 0, len(pairs))
	for _, p := range pairs {
		def := lookup[p.varID]
		name := strings.TrimSpace(def.Name)
		if name == "" {
			name = "var_" + p.varID
		}
		value := strings.TrimSpace(def.Options[p.optionID])
		if value == "" {
			value = p.optionID
		}
		resolved = append(resolved, domain.ResolvedVariation{
			VariationID: p.varID,
			Name:        name,
			OptionID:    p.optionID,
			Value:       value,
		})
	}
	return resolved
}

// VariationText joins the resolved option values into a human-readable
// label such as "Red / Large".
func VariationText(variations []domain.ResolvedVariation) string {
	parts := make([]string, 0, len(variations))
	for _, v := range variations {
		if value := strings.TrimSpace(v.Value); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " / ")
}
