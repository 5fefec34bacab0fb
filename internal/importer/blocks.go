package importer

import (
	"regexp"
	"strings"

	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

const (
	blockOpen  = "<!-- wp:paragraph -->"
	blockClose = "<!-- /wp:paragraph -->"
)

// Matches any newline sequence: \r\n, \n or a bare \r.
var newlineSeq = regexp.MustCompile(`\r\n|\r|\n`)

// ConvertToBlocks turns freeform text into block-structured markup: the input
// is sanitized as rich text, split on newlines, and every non-empty line is
// wrapped in one paragraph block. Blank lines are collapsed rather than
// preserved as empty paragraphs.
func ConvertToBlocks(value any) string {
	sanitized := utils.SanitizeRichText(value)
	lines := newlineSeq.Split(sanitized, -1)

	var b strings.Builder
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(blockOpen)
		b.WriteString("<p>")
		b.WriteString(trimmed)
		b.WriteString("</p>")
		b.WriteString(blockClose)
		b.WriteString("\n\n")
	}

	return b.String()
}
