package parsers

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
)

// ParseCSV decodes a comma-delimited upload with a header row. Parsing is
// line-by-line: blank lines and all-empty rows are skipped, the first
// surviving row supplies the headers, and each data row is zipped against
// them by position with values trimmed. Values past the header count get
// synthetic column_<index> keys.
func ParseCSV(content []byte) (*Result, *importer.Error) {
	var (
		headers      []string
		headersFound bool
		records      []importer.Record
		firstKeys    []string
	)

	lines := strings.Split(string(content), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		row, err := parseCSVLine(line)
		if err != nil {
			// A malformed line (e.g. an unterminated quote) is skipped the
			// same way a blank one is; item-level validation happens later.
			continue
		}
		if allEmpty(row) {
			continue
		}

		if !headersFound {
			headers = make([]string, len(row))
			nonEmpty := 0
			for i, h := range row {
				headers[i] = strings.TrimSpace(h)
				if headers[i] != "" {
					nonEmpty++
				}
			}
			if nonEmpty == 0 {
				return nil, importer.NewError(importer.CodeInvalidCSVHeaders,
					"CSV file must have header row with column names.")
			}
			headersFound = true
			continue
		}

		record := make(importer.Record, len(row))
		var keys []string
		for i, value := range row {
			key := fmt.Sprintf("column_%d", i)
			if i < len(headers) {
				key = headers[i]
			}
			if _, dup := record[key]; !dup {
				keys = append(keys, key)
			}
			record[key] = strings.TrimSpace(value)
		}

		if firstKeys == nil {
			firstKeys = keys
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, importer.NewError(importer.CodeEmptyCSV,
			"The CSV file appears to contain no data rows.")
	}

	return &Result{
		Records: records,
		Keys:    firstKeys,
		Count:   len(records),
	}, nil
}

// parseCSVLine parses a single physical line as one CSV row.
func parseCSVLine(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	return reader.Read()
}

// allEmpty deliberately does not trim: a row of whitespace-only fields is
// still presented to header validation, which then rejects it.
func allEmpty(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
