package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwahlfeldt/bulk-post-importer/internal/pluginfields"
)

// stubFieldLister implements FieldLister for testing.
type stubFieldLister struct {
	active bool
	fields []pluginfields.FieldInfo
}

func (s *stubFieldLister) Active() bool { return s.active }

func (s *stubFieldLister) FieldsForPostType(postType string) ([]pluginfields.FieldInfo, error) {
	return s.fields, nil
}

func (s *stubFieldLister) AllowedTypes() map[string]string {
	return map[string]string{"text": "Text"}
}

func performFieldsRequest(t *testing.T, controller *FieldsController, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/api/fields", controller.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/fields"+query, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestFieldsController_List(t *testing.T) {
	lister := &stubFieldLister{
		active: true,
		fields: []pluginfields.FieldInfo{
			{Key: "field_a", Name: "a", Label: "A", Type: "text", Mappable: true},
			{Key: "field_b", Name: "b", Label: "B", Type: "gallery", Mappable: false},
		},
	}
	controller := NewFieldsController(lister)

	w := performFieldsRequest(t, controller, "?post_type=post")
	require.Equal(t, http.StatusOK, w.Code)

	var resp FieldsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Title leads the standard catalogue and is the only required field
	require.NotEmpty(t, resp.Standard)
	assert.Equal(t, "post_title", string(resp.Standard[0].Key))
	assert.Equal(t, "Title (Required)", resp.Standard[0].Label)
	assert.True(t, resp.Standard[0].Required)

	require.Len(t, resp.Plugin, 2)
	assert.True(t, resp.Plugin[0].Mappable)
	assert.False(t, resp.Plugin[1].Mappable)
	assert.True(t, resp.PluginActive)
	assert.Equal(t, "Text", resp.AllowedTypes["text"])
}

func TestFieldsController_InactiveSubsystem(t *testing.T) {
	controller := NewFieldsController(&stubFieldLister{active: false})

	w := performFieldsRequest(t, controller, "?post_type=post")
	require.Equal(t, http.StatusOK, w.Code)

	var resp FieldsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Standard)
	assert.Empty(t, resp.Plugin)
	assert.False(t, resp.PluginActive)
}

func TestFieldsController_RequiresPostType(t *testing.T) {
	controller := NewFieldsController(&stubFieldLister{active: true})

	w := performFieldsRequest(t, controller, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
