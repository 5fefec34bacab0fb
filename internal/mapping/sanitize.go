package mapping

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

// Sanitize builds a Spec from an arbitrary decoded JSON structure. It is
// total: unrecognized shapes at any level degrade to empty sections rather
// than erroring, since the input is untrusted form data.
func Sanitize(raw any) *Spec {
	spec := &Spec{
		Standard: map[string]string{},
		Custom:   []CustomEntry{},
		Plugin:   map[string]string{},
	}

	root, ok := raw.(map[string]any)
	if !ok {
		return spec
	}

	for key, section := range root {
		switch utils.SanitizeKey(key) {
		case "standard":
			spec.Standard = sanitizeKeyed(section)
		case "custom":
			spec.Custom = sanitizeCustom(section)
		case "plugin", "acf":
			spec.Plugin = sanitizeKeyed(section)
		}
	}

	return spec
}

// sanitizeKeyed sanitizes a flat destination-key -> source-key section.
func sanitizeKeyed(section any) map[string]string {
	out := map[string]string{}

	m, ok := section.(map[string]any)
	if !ok {
		return out
	}

	for key, value := range m {
		sanitized := utils.SanitizeKey(key)
		if sanitized == "" {
			continue
		}
		out[sanitized] = leafString(value)
	}

	return out
}

// sanitizeCustom accepts the custom tier either as a JSON array or as an
// object with numeric-looking keys (the shape HTML form encoding produces),
// preserving numeric order in the latter case.
func sanitizeCustom(section any) []CustomEntry {
	switch v := section.(type) {
	case []any:
		entries := make([]CustomEntry, 0, len(v))
		for _, item := range v {
			entries = append(entries, sanitizeCustomEntry(item))
		}
		return entries
	case map[string]any:
		indices := make([]int, 0, len(v))
		byIndex := make(map[int]any, len(v))
		for key, item := range v {
			idx := absInt(key)
			if _, seen := byIndex[idx]; !seen {
				indices = append(indices, idx)
			}
			byIndex[idx] = item
		}
		sort.Ints(indices)

		entries := make([]CustomEntry, 0, len(indices))
		for _, idx := range indices {
			entries = append(entries, sanitizeCustomEntry(byIndex[idx]))
		}
		return entries
	default:
		return []CustomEntry{}
	}
}

func sanitizeCustomEntry(item any) CustomEntry {
	m, ok := item.(map[string]any)
	if !ok {
		return CustomEntry{}
	}

	var entry CustomEntry
	for key, value := range m {
		switch utils.SanitizeKey(key) {
		case "json_key":
			entry.SourceKey = leafString(value)
		case "meta_key":
			entry.MetaKey = utils.SanitizeMetaKey(utils.Stringify(value))
		}
	}
	return entry
}

// leafString sanitizes a leaf value: strings are text-sanitized, numbers pass
// through, anything else becomes the empty string.
func leafString(value any) string {
	switch v := value.(type) {
	case string:
		return utils.SanitizeText(v)
	case float64, int, int64, json.Number:
		return utils.Stringify(v)
	default:
		return ""
	}
}

// absInt coerces a numeric-looking key to a non-negative integer; anything
// else becomes zero.
func absInt(key string) int {
	n, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return 0
	}
	return int(math.Abs(n))
}
