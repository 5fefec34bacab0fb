package parsers

import (
	"bytes"
	"encoding/json"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseJSON decodes a JSON upload. The root must be a non-empty array whose
// first element is an object. Only the first element's shape is checked
// structurally; later non-object elements survive parsing as nil records and
// are rejected individually during batch processing.
//
// A root-level object keeps its historical reporting: an empty object as an
// empty array, a non-empty object as invalid items. Client tooling matches
// those codes literally, so the split stays.
func ParseJSON(content []byte) (*Result, *importer.Error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	var root any
	if err := json.Unmarshal(content, &root); err != nil {
		return nil, importer.NewError(importer.CodeJSONDecodeError,
			"JSON Decode Error: %s. Please ensure the file is valid UTF-8 encoded JSON.", err.Error())
	}

	switch v := root.(type) {
	case []any:
		return parseJSONArray(v, content)
	case map[string]any:
		if len(v) == 0 {
			return nil, importer.NewError(importer.CodeEmptyArray,
				"The JSON file appears to contain an empty array.")
		}
		return nil, importer.NewError(importer.CodeInvalidItems,
			"JSON file structure error: The array should contain objects {...}.")
	default:
		return nil, importer.NewError(importer.CodeInvalidStructure,
			"JSON file structure error: Root element must be an array [...].")
	}
}

func parseJSONArray(items []any, content []byte) (*Result, *importer.Error) {
	if len(items) == 0 {
		return nil, importer.NewError(importer.CodeEmptyArray,
			"The JSON file appears to contain an empty array.")
	}

	if _, ok := items[0].(map[string]any); !ok {
		return nil, importer.NewError(importer.CodeInvalidItems,
			"JSON file structure error: The array should contain objects {...}.")
	}

	records := make([]importer.Record, len(items))
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			records[i] = importer.Record(m)
		}
		// Non-objects stay nil and are skipped per-item later.
	}

	return &Result{
		Records: records,
		Keys:    firstObjectKeys(content),
		Count:   len(records),
	}, nil
}

// firstObjectKeys re-scans the document with a streaming decoder to recover
// the first object's keys in source order, which map decoding discards.
// Duplicate keys keep their first position.
func firstObjectKeys(content []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(content))

	// Consume the opening '[' and '{'.
	for i := 0; i < 2; i++ {
		if _, err := dec.Token(); err != nil {
			return nil
		}
	}

	keys := []string{}
	seen := map[string]struct{}{}

	for {
		tok, err := dec.Token()
		if err != nil {
			return keys
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return keys
		}

		key, ok := tok.(string)
		if !ok {
			return keys
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}

		if err := skipValue(dec); err != nil {
			return keys
		}
	}
}

// skipValue consumes the next JSON value, tracking nesting depth.
func skipValue(dec *json.Decoder) error {
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
		if depth == 0 {
			return nil
		}
	}
}
