package importer

// StandardField names a destination field in the fixed standard set.
type StandardField string

const (
	FieldTitle   StandardField = "post_title"
	FieldContent StandardField = "post_content"
	FieldExcerpt StandardField = "post_excerpt"
	FieldStatus  StandardField = "post_status"
	FieldDate    StandardField = "post_date"
)

// DefaultStatus is used when no status mapping applies or the mapped value is
// not a registered status.
const DefaultStatus = "publish"

// StandardFieldInfo describes one standard field for mapping UIs.
type StandardFieldInfo struct {
	Key      StandardField `json:"key"`
	Label    string        `json:"label"`
	Required bool          `json:"required"`
}

// StandardFields returns the catalogue of mappable standard fields, in
// display order. Title is the only field whose absence fails an item.
func StandardFields() []StandardFieldInfo {
	return []StandardFieldInfo{
		{Key: FieldTitle, Label: "Title (Required)", Required: true},
		{Key: FieldContent, Label: "Content (Converted to Paragraph Blocks)"},
		{Key: FieldExcerpt, Label: "Excerpt"},
		{Key: FieldStatus, Label: "Status (e.g., publish, draft)"},
		{Key: FieldDate, Label: "Date (YYYY-MM-DD HH:MM:SS)"},
	}
}
