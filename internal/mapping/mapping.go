// Package mapping models the operator-supplied field mapping: which source
// keys feed which destination fields across three independent tiers.
package mapping

// CustomEntry maps one source key onto one custom meta key. Entries with an
// empty side are kept but skipped silently when applied; duplicate meta keys
// are allowed, with later entries overwriting earlier ones.
type CustomEntry struct {
	SourceKey string `json:"json_key"`
	MetaKey   string `json:"meta_key"`
}

// Spec is the sanitized three-tier mapping.
//
// Standard maps destination standard-field names (post_title, post_content,
// ...) to source keys. Custom is an ordered list of source-key/meta-key
// pairs. Plugin maps plugin-field keys to source keys; only fields with a
// scalar declared type are ever populated from it.
type Spec struct {
	Standard map[string]string `json:"standard"`
	Custom   []CustomEntry     `json:"custom"`
	Plugin   map[string]string `json:"plugin"`
}

// Empty reports whether no tier carries any entries.
func (s *Spec) Empty() bool {
	return len(s.Standard) == 0 && len(s.Custom) == 0 && len(s.Plugin) == 0
}
