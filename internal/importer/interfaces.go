package importer

import (
	"time"
)

// Record is one raw item from an uploaded file: a flat key/value mapping.
// CSV values are always strings; JSON values may be nested structures, which
// are passed through to mapping untouched. A nil Record marks an element that
// was not an object in the source file; it is rejected during batch
// processing, not at parse time.
type Record map[string]any

// MetaEntry is one custom key/value pair attached to a creation request.
type MetaEntry struct {
	Key   string
	Value any
}

// CreationRequest is everything needed to create one content record. Produced
// by the Processor, consumed by a ContentStore.
type CreationRequest struct {
	PostType string
	Title    string
	Content  string
	Excerpt  string
	Status   string
	Date     time.Time
	DateGMT  time.Time
	AuthorID uint

	// Meta holds custom-field attachments in mapping order. Later entries
	// with the same key overwrite earlier ones when persisted.
	Meta []MetaEntry

	// Extra holds mapped standard fields outside the known set, already
	// sanitized as plain text.
	Extra map[string]string

	// PluginFields holds values staged for plugin-field updates after the
	// record is created, keyed by field key.
	PluginFields map[string]any
}

// ContentStore creates content records. Implementations may reject a request
// for reasons outside the importer's control; the batch runner treats that as
// a per-item skip.
type ContentStore interface {
	CreatePost(req *CreationRequest) (uint, error)

	// RegisteredStatuses returns the live set of allowed content statuses.
	RegisteredStatuses() ([]string, error)
}

// BulkBracket is optionally implemented by a ContentStore that wants to defer
// expensive bookkeeping (aggregate counters and the like) for the duration of
// a batch.
type BulkBracket interface {
	StartBulk()
	FinishBulk()
}

// FieldDescriptor describes one plugin field as declared by the plugin-field
// subsystem.
type FieldDescriptor struct {
	Key   string
	Name  string
	Label string
	Type  string
}

// PluginFieldResolver is the importer's view of the plugin-field subsystem.
type PluginFieldResolver interface {
	// Active reports whether the subsystem is available at all.
	Active() bool

	// FieldByKey resolves a field descriptor, or nil when unknown.
	FieldByKey(key string) (*FieldDescriptor, error)

	// Mappable reports whether the field's declared type may be populated
	// from scalar import data.
	Mappable(field *FieldDescriptor) bool

	// UpdateField writes a value best-effort; false means the update failed
	// and the item should carry a warning, not fail.
	UpdateField(key string, value any, postID uint) bool
}
