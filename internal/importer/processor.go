package importer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/cwahlfeldt/bulk-post-importer/internal/mapping"
	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

// Processor applies a sanitized mapping to one raw record, producing either a
// creation request or a per-item error. Warnings (unparseable date, unknown
// status) accompany successful items rather than failing them.
type Processor struct {
	statuses map[string]struct{}
	fields   PluginFieldResolver
	authorID uint
	now      func() time.Time
}

// NewProcessor builds a processor bound to the live status set and the
// plugin-field subsystem. fields may be nil when the subsystem is absent.
func NewProcessor(statuses []string, fields PluginFieldResolver, authorID uint) *Processor {
	set := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return &Processor{
		statuses: set,
		fields:   fields,
		authorID: authorID,
		now:      time.Now,
	}
}

// itemState carries per-item accumulation across field transformers.
type itemState struct {
	req         *CreationRequest
	itemNum     int
	warnings    []string
	titleMapped bool
}

// fieldTransformer converts one mapped source value into its destination
// field on the request.
type fieldTransformer func(p *Processor, st *itemState, value any)

// One transformer per standard field; destinations outside this set are
// copied as sanitized plain text.
var standardTransformers = map[StandardField]fieldTransformer{
	FieldTitle: func(p *Processor, st *itemState, value any) {
		st.req.Title = utils.SanitizeText(value)
		st.titleMapped = true
	},
	FieldContent: func(p *Processor, st *itemState, value any) {
		st.req.Content = ConvertToBlocks(value)
	},
	FieldExcerpt: func(p *Processor, st *itemState, value any) {
		st.req.Excerpt = utils.SanitizeRichText(value)
	},
	FieldStatus: (*Processor).applyStatus,
	FieldDate:   (*Processor).applyDate,
}

// Apply runs the mapping over one record. itemNum is 1-based and used only
// for operator-facing messages.
func (p *Processor) Apply(record Record, spec *mapping.Spec, postType string, itemNum int) (*CreationRequest, []string, *Error) {
	now := p.now()
	st := &itemState{
		itemNum: itemNum,
		req: &CreationRequest{
			PostType:     postType,
			Status:       DefaultStatus,
			Date:         now,
			DateGMT:      now.UTC(),
			AuthorID:     p.authorID,
			Extra:        map[string]string{},
			PluginFields: map[string]any{},
		},
	}

	p.mapStandardFields(record, spec, st)

	if !st.titleMapped {
		return nil, st.warnings, NewError(CodeMissingTitle,
			"Item #%d: Skipped - Missing required field mapping or value for: Title (post_title).", itemNum)
	}

	p.mapCustomFields(record, spec, st)
	p.mapPluginFields(record, spec, st)

	return st.req, st.warnings, nil
}

func (p *Processor) mapStandardFields(record Record, spec *mapping.Spec, st *itemState) {
	for wpKey, sourceKey := range spec.Standard {
		if sourceKey == "" {
			continue
		}
		value, ok := record[sourceKey]
		if !ok {
			continue
		}

		if transform, known := standardTransformers[StandardField(wpKey)]; known {
			transform(p, st, value)
		} else {
			st.req.Extra[wpKey] = utils.SanitizeText(value)
		}
	}
}

func (p *Processor) mapCustomFields(record Record, spec *mapping.Spec, st *itemState) {
	for _, entry := range spec.Custom {
		if entry.SourceKey == "" || entry.MetaKey == "" {
			continue
		}
		value, ok := record[entry.SourceKey]
		if !ok {
			continue
		}
		st.req.Meta = append(st.req.Meta, MetaEntry{Key: entry.MetaKey, Value: value})
	}
}

func (p *Processor) mapPluginFields(record Record, spec *mapping.Spec, st *itemState) {
	if p.fields == nil || !p.fields.Active() {
		return
	}

	for fieldKey, sourceKey := range spec.Plugin {
		if sourceKey == "" {
			continue
		}
		value, ok := record[sourceKey]
		if !ok {
			continue
		}

		desc, err := p.fields.FieldByKey(fieldKey)
		if err != nil || desc == nil {
			continue
		}
		// Fields outside the scalar type allowlist are dropped silently;
		// this is a capability boundary, not a warning.
		if p.fields.Mappable(desc) {
			st.req.PluginFields[fieldKey] = value
		}
	}
}

func (p *Processor) applyStatus(st *itemState, value any) {
	keyed := utils.SanitizeKey(utils.Stringify(value))

	if _, ok := p.statuses[keyed]; ok {
		st.req.Status = keyed
		return
	}

	st.warnings = append(st.warnings, fmt.Sprintf(
		`Item #%d: Notice - Invalid status "%s" provided for post_status, using default "%s".`,
		st.itemNum, html.EscapeString(utils.Stringify(value)), DefaultStatus))
}

func (p *Processor) applyDate(st *itemState, value any) {
	raw := strings.TrimSpace(utils.Stringify(value))

	if t, ok := ParseFlexibleDate(raw); ok {
		st.req.Date = t
		st.req.DateGMT = t.UTC()
		return
	}

	st.warnings = append(st.warnings, fmt.Sprintf(
		`Item #%d: Notice - Could not parse date "%s" for post_date, using current time.`,
		st.itemNum, html.EscapeString(raw)))
}
