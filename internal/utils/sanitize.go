package utils

import (
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy strips all markup, for plain-text destinations.
	strictPolicy = bluemonday.StrictPolicy()

	// richTextPolicy allows the permissive user-content HTML subset, for
	// rich-text destinations such as the excerpt and the content body.
	richTextPolicy = bluemonday.UGCPolicy()

	whitespaceRun = regexp.MustCompile(`[ \t\r\n\f]+`)
	keyCharset    = regexp.MustCompile(`[^a-z0-9_\-]`)
	metaCharset   = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
)

// SanitizeText reduces a value to safe plain text: tags stripped, entities
// decoded, whitespace collapsed.
func SanitizeText(value any) string {
	s := strictPolicy.Sanitize(Stringify(value))
	s = html.UnescapeString(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SanitizeRichText keeps a permissive HTML subset and drops everything else.
func SanitizeRichText(value any) string {
	return richTextPolicy.Sanitize(Stringify(value))
}

// SanitizeKey lowercases a value and restricts it to the safe identifier
// charset [a-z0-9_-].
func SanitizeKey(value string) string {
	return keyCharset.ReplaceAllString(strings.ToLower(value), "")
}

// SanitizeMetaKey restricts a custom-field key to [A-Za-z0-9_-], preserving
// case.
func SanitizeMetaKey(value string) string {
	return metaCharset.ReplaceAllString(value, "")
}

// Stringify renders a raw record value as a string. Nested structures are
// JSON-encoded rather than flattened.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
