package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/mapping"
	"github.com/cwahlfeldt/bulk-post-importer/internal/staging"
)

// stubRunner implements BatchRunner, recording what it was asked to run.
type stubRunner struct {
	records  []importer.Record
	spec     *mapping.Spec
	postType string
	fileName string
	outcome  *importer.Outcome
	err      error
}

func (s *stubRunner) Run(records []importer.Record, spec *mapping.Spec, postType, fileName string) (*importer.Outcome, error) {
	s.records = records
	s.spec = spec
	s.postType = postType
	s.fileName = fileName
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func performImport(t *testing.T, controller *ImportController, payload any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/import/run", controller.Import)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/api/import/run", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func stagedFixture() *staging.Staged {
	return &staging.Staged{
		Records:  []importer.Record{{"title": "One"}, {"title": "Two"}},
		PostType: "post",
		FileName: "posts.json",
	}
}

func validMapping() map[string]any {
	return map[string]any{
		"standard": map[string]any{"post_title": "title"},
	}
}

func TestImportController_Success(t *testing.T) {
	store := newStubStagingStore()
	store.entries["tok1"] = stagedFixture()

	runner := &stubRunner{outcome: &importer.Outcome{
		ImportedCount:    2,
		SkippedCount:     0,
		TotalItems:       2,
		Duration:         0.01,
		ErrorMessages:    []string{},
		OriginalFileName: "posts.json",
	}}
	controller := NewImportController(store, runner, nil, nil)

	w := performImport(t, controller, map[string]any{
		"token":     "tok1",
		"post_type": "post",
		"mapping":   validMapping(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var outcome importer.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, 2, outcome.ImportedCount)
	assert.Equal(t, "posts.json", outcome.OriginalFileName)

	// The runner got the staged records and the sanitized mapping
	assert.Len(t, runner.records, 2)
	assert.Equal(t, "title", runner.spec.Standard["post_title"])
	assert.Equal(t, "post", runner.postType)
	assert.Equal(t, "posts.json", runner.fileName)

	// Staged entry is consumed by a successful import
	assert.Contains(t, store.deleted, "tok1")
}

func TestImportController_MissingData(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"empty token", map[string]any{"token": "", "post_type": "post", "mapping": validMapping()}},
		{"empty post type", map[string]any{"token": "t", "post_type": "", "mapping": validMapping()}},
		{"missing mapping", map[string]any{"token": "t", "post_type": "post"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewImportController(newStubStagingStore(), &stubRunner{}, nil, nil)
			w := performImport(t, controller, tt.payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "missing_data", resp.Code)
		})
	}
}

func TestImportController_ExpiredToken(t *testing.T) {
	controller := NewImportController(newStubStagingStore(), &stubRunner{}, nil, nil)

	w := performImport(t, controller, map[string]any{
		"token":     "unknown",
		"post_type": "post",
		"mapping":   validMapping(),
	})

	assert.Equal(t, http.StatusGone, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "expired_data", resp.Code)
	assert.Equal(t, "Import data expired or was invalid. Please start over.", resp.Error)
}

func TestImportController_PostTypeMismatch(t *testing.T) {
	store := newStubStagingStore()
	store.entries["tok1"] = stagedFixture() // staged for "post"

	controller := NewImportController(store, &stubRunner{}, nil, nil)

	w := performImport(t, controller, map[string]any{
		"token":     "tok1",
		"post_type": "page",
		"mapping":   validMapping(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "post_type_mismatch", resp.Code)

	// The mismatched entry is dropped so retries start clean
	assert.Contains(t, store.deleted, "tok1")
}

func TestImportController_TokenIsSingleUse(t *testing.T) {
	store := newStubStagingStore()
	store.entries["tok1"] = stagedFixture()

	runner := &stubRunner{outcome: &importer.Outcome{TotalItems: 2, ImportedCount: 2, ErrorMessages: []string{}}}
	controller := NewImportController(store, runner, nil, nil)

	payload := map[string]any{
		"token":     "tok1",
		"post_type": "post",
		"mapping":   validMapping(),
	}

	first := performImport(t, controller, payload)
	require.Equal(t, http.StatusOK, first.Code)

	second := performImport(t, controller, payload)
	assert.Equal(t, http.StatusGone, second.Code)
	assert.Equal(t, "expired_data", decodeError(t, second).Code)
}
