// Package parsers decodes uploaded import files (JSON or CSV) into flat
// records and validates their structural shape. Parse failures are coded
// importer errors; malformed individual items are tolerated here and
// rejected later, during per-item processing.
package parsers

import (
	"path/filepath"
	"strings"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
)

// Result is a successfully parsed file: the records, the mapping-candidate
// key list, and the record count.
type Result struct {
	Records []importer.Record

	// Keys are taken from the first record only, in source order. Keys
	// that later records introduce are simply not offered for mapping.
	Keys []string

	Count int
}

// Parse dispatches on the declared filename's extension.
func Parse(content []byte, filename string) (*Result, *importer.Error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return ParseJSON(content)
	case ".csv":
		return ParseCSV(content)
	default:
		return nil, importer.NewError(importer.CodeUnsupportedFileType,
			"Unsupported file type. Please upload a JSON or CSV file.")
	}
}
