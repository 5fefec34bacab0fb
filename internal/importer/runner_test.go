package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwahlfeldt/bulk-post-importer/internal/mapping"
)

// stubContentStore records creation requests and can fail selectively.
type stubContentStore struct {
	created     []*CreationRequest
	failOnTitle string
	statusErr   error
	bulkStarts  int
	bulkFinish  int
}

func (s *stubContentStore) CreatePost(req *CreationRequest) (uint, error) {
	if s.failOnTitle != "" && req.Title == s.failOnTitle {
		return 0, errors.New("database is on fire")
	}
	s.created = append(s.created, req)
	return uint(len(s.created)), nil
}

func (s *stubContentStore) RegisteredStatuses() ([]string, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return defaultStatuses(), nil
}

func (s *stubContentStore) StartBulk()  { s.bulkStarts++ }
func (s *stubContentStore) FinishBulk() { s.bulkFinish++ }

func titleOnlySpec() *mapping.Spec {
	return &mapping.Spec{Standard: map[string]string{"post_title": "title"}}
}

func TestRunnerRun_AllSucceed(t *testing.T) {
	store := &stubContentStore{}
	runner := NewRunner(store, nil, 1)

	records := []Record{
		{"title": "One"},
		{"title": "Two"},
		{"title": "Three"},
	}

	outcome, err := runner.Run(records, titleOnlySpec(), "post", "posts.json")
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.ImportedCount)
	assert.Equal(t, 0, outcome.SkippedCount)
	assert.Equal(t, 3, outcome.TotalItems)
	assert.Empty(t, outcome.ErrorMessages)
	assert.Equal(t, "posts.json", outcome.OriginalFileName)
	assert.Len(t, store.created, 3)
}

func TestRunnerRun_CountsAreConserved(t *testing.T) {
	store := &stubContentStore{}
	runner := NewRunner(store, nil, 1)

	records := []Record{
		{"title": "Good"},
		nil,                // not an object in the source file
		{"headline": "no"}, // title unmapped
		{"title": "Also good"},
	}

	outcome, err := runner.Run(records, titleOnlySpec(), "post", "mixed.json")
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.ImportedCount)
	assert.Equal(t, 2, outcome.SkippedCount)
	assert.Equal(t, outcome.TotalItems, outcome.ImportedCount+outcome.SkippedCount)

	require.Len(t, outcome.ErrorMessages, 2)
	assert.Equal(t, "Item #2: Skipped - Invalid data format (expected object/array).", outcome.ErrorMessages[0])
	assert.Equal(t, "Item #3: Skipped - Missing required field mapping or value for: Title (post_title).", outcome.ErrorMessages[1])
}

func TestRunnerRun_CreationFailureIsIsolated(t *testing.T) {
	store := &stubContentStore{failOnTitle: "Broken"}
	runner := NewRunner(store, nil, 1)

	records := []Record{
		{"title": "Fine"},
		{"title": "Broken"},
		{"title": "Still fine"},
	}

	outcome, err := runner.Run(records, titleOnlySpec(), "post", "f.json")
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.ImportedCount)
	assert.Equal(t, 1, outcome.SkippedCount)
	require.Len(t, outcome.ErrorMessages, 1)
	assert.Equal(t, "Item #2: Failed to create post - database is on fire", outcome.ErrorMessages[0])
}

func TestRunnerRun_StatusRegistryFailureAborts(t *testing.T) {
	store := &stubContentStore{statusErr: errors.New("registry unavailable")}
	runner := NewRunner(store, nil, 1)

	_, err := runner.Run([]Record{{"title": "T"}}, titleOnlySpec(), "post", "f.json")
	assert.Error(t, err)
	assert.Empty(t, store.created)
}

func TestRunnerRun_BulkBracket(t *testing.T) {
	store := &stubContentStore{}
	runner := NewRunner(store, nil, 1)

	_, err := runner.Run([]Record{{"title": "T"}}, titleOnlySpec(), "post", "f.json")
	require.NoError(t, err)

	assert.Equal(t, 1, store.bulkStarts)
	assert.Equal(t, 1, store.bulkFinish)
}

func TestRunnerRun_PluginFieldUpdateWarning(t *testing.T) {
	resolver := &stubFieldResolver{
		active: true,
		fields: map[string]*FieldDescriptor{
			"field_a": {Key: "field_a", Name: "a", Label: "Field A", Type: "text"},
		},
		failKey: "field_a",
	}
	store := &stubContentStore{}
	runner := NewRunner(store, resolver, 1)

	spec := &mapping.Spec{
		Standard: map[string]string{"post_title": "title"},
		Plugin:   map[string]string{"field_a": "val"},
	}

	outcome, err := runner.Run([]Record{{"title": "T", "val": "x"}}, spec, "post", "f.json")
	require.NoError(t, err)

	// The item still counts as imported, the failed update is a notice
	assert.Equal(t, 1, outcome.ImportedCount)
	require.Len(t, outcome.ErrorMessages, 1)
	assert.Equal(t, `Item #1 (Post ID 1): Notice - Plugin field update potentially failed for field "Field A". Check data format in the source file.`, outcome.ErrorMessages[0])
}

func TestRunnerRun_EmptyBatch(t *testing.T) {
	store := &stubContentStore{}
	runner := NewRunner(store, nil, 1)

	outcome, err := runner.Run(nil, titleOnlySpec(), "post", "empty.json")
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.TotalItems)
	assert.Equal(t, 0, outcome.ImportedCount)
	assert.Equal(t, 0, outcome.SkippedCount)
	assert.NotNil(t, outcome.ErrorMessages)
}
