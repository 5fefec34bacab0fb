package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/cwahlfeldt/bulk-post-importer/internal/mapping"
)

// Outcome summarizes one batch run. Counts are conserved:
// ImportedCount + SkippedCount == TotalItems for every run.
type Outcome struct {
	ImportedCount    int      `json:"imported_count"`
	SkippedCount     int      `json:"skipped_count"`
	TotalItems       int      `json:"total_items"`
	Duration         float64  `json:"duration"`
	ErrorMessages    []string `json:"error_messages"`
	OriginalFileName string   `json:"original_file_name"`
}

// Runner drives one batch import: a straight sequential loop over the staged
// records, isolating per-item failures. Content-creation side effects in the
// host are not safe under concurrent writes, so there is deliberately no
// parallelism here.
type Runner struct {
	store    ContentStore
	fields   PluginFieldResolver
	authorID uint
	now      func() time.Time
}

// NewRunner builds a batch runner. fields may be nil when the plugin-field
// subsystem is absent.
func NewRunner(store ContentStore, fields PluginFieldResolver, authorID uint) *Runner {
	return &Runner{
		store:    store,
		fields:   fields,
		authorID: authorID,
		now:      time.Now,
	}
}

// Run processes every record and returns the aggregated outcome. A failing
// record never aborts the batch; errors returned here are precondition
// failures (e.g. the status registry being unreadable) raised before the
// loop starts.
func (r *Runner) Run(records []Record, spec *mapping.Spec, postType, fileName string) (*Outcome, error) {
	statuses, err := r.store.RegisteredStatuses()
	if err != nil {
		return nil, fmt.Errorf("failed to load registered statuses: %w", err)
	}
	processor := NewProcessor(statuses, r.fields, r.authorID)

	outcome := &Outcome{
		TotalItems:       len(records),
		ErrorMessages:    []string{},
		OriginalFileName: fileName,
	}

	// Expensive bookkeeping in the store is deferred for the duration of
	// the batch and recomputed once afterwards.
	if bracket, ok := r.store.(BulkBracket); ok {
		bracket.StartBulk()
		defer bracket.FinishBulk()
	}

	start := r.now()

	for i, record := range records {
		itemNum := i + 1

		if record == nil {
			outcome.SkippedCount++
			outcome.ErrorMessages = append(outcome.ErrorMessages,
				fmt.Sprintf("Item #%d: Skipped - Invalid data format (expected object/array).", itemNum))
			continue
		}

		req, warnings, itemErr := processor.Apply(record, spec, postType, itemNum)
		outcome.ErrorMessages = append(outcome.ErrorMessages, warnings...)

		if itemErr != nil {
			outcome.SkippedCount++
			outcome.ErrorMessages = append(outcome.ErrorMessages, itemErr.Message)
			continue
		}

		postID, createErr := r.store.CreatePost(req)
		if createErr != nil {
			// Creation can be rejected independently of mapping success.
			outcome.SkippedCount++
			outcome.ErrorMessages = append(outcome.ErrorMessages,
				fmt.Sprintf("Item #%d: Failed to create post - %s", itemNum, createErr.Error()))
			continue
		}

		outcome.ImportedCount++
		outcome.ErrorMessages = append(outcome.ErrorMessages,
			r.updatePluginFields(req, postID, itemNum)...)
	}

	elapsed := r.now().Sub(start)
	outcome.Duration = math.Round(elapsed.Seconds()*100) / 100

	return outcome, nil
}

// updatePluginFields applies staged plugin-field values to a created record.
// Failures yield warnings only: the record already counts as imported.
func (r *Runner) updatePluginFields(req *CreationRequest, postID uint, itemNum int) []string {
	if r.fields == nil || len(req.PluginFields) == 0 {
		return nil
	}

	var warnings []string
	for fieldKey, value := range req.PluginFields {
		if r.fields.UpdateField(fieldKey, value, postID) {
			continue
		}

		label := fieldKey
		if desc, err := r.fields.FieldByKey(fieldKey); err == nil && desc != nil && desc.Label != "" {
			label = desc.Label
		}
		warnings = append(warnings, fmt.Sprintf(
			`Item #%d (Post ID %d): Notice - Plugin field update potentially failed for field "%s". Check data format in the source file.`,
			itemNum, postID, label))
	}

	return warnings
}
