package pluginfields

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwahlfeldt/bulk-post-importer/internal/database"
	"github.com/cwahlfeldt/bulk-post-importer/internal/entities"
	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
)

func setupService(t *testing.T, enabled bool) (*Service, func()) {
	t.Helper()

	dbPath := "./test_fields_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewService(db.DB, enabled), cleanup
}

func textField() entities.PluginField {
	return entities.PluginField{
		Key:      "field_abc123",
		Name:     "subtitle",
		Label:    "Subtitle",
		Type:     "text",
		PostType: "post",
	}
}

func TestService_Active(t *testing.T) {
	enabled, cleanup := setupService(t, true)
	defer cleanup()
	assert.True(t, enabled.Active())

	disabled, cleanup2 := setupService(t, false)
	defer cleanup2()
	assert.False(t, disabled.Active())
}

func TestRegisterAndResolveField(t *testing.T) {
	svc, cleanup := setupService(t, true)
	defer cleanup()

	require.NoError(t, svc.RegisterField(textField()))

	desc, err := svc.FieldByKey("field_abc123")
	require.NoError(t, err)
	require.NotNil(t, desc)
	assert.Equal(t, "Subtitle", desc.Label)
	assert.Equal(t, "text", desc.Type)

	// Re-registering updates in place
	updated := textField()
	updated.Label = "New Subtitle"
	require.NoError(t, svc.RegisterField(updated))

	desc, err = svc.FieldByKey("field_abc123")
	require.NoError(t, err)
	assert.Equal(t, "New Subtitle", desc.Label)

	missing, err := svc.FieldByKey("field_nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFieldsForPostType(t *testing.T) {
	svc, cleanup := setupService(t, true)
	defer cleanup()

	require.NoError(t, svc.RegisterField(textField()))
	require.NoError(t, svc.RegisterField(entities.PluginField{
		Key: "field_gallery", Name: "gallery", Label: "Gallery", Type: "gallery", PostType: "post",
	}))
	require.NoError(t, svc.RegisterField(entities.PluginField{
		Key: "field_other", Name: "other", Label: "Other", Type: "text", PostType: "page",
	}))

	fields, err := svc.FieldsForPostType("post")
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.True(t, fields[0].Mappable)
	// Structured types are listed but flagged unmappable
	assert.False(t, fields[1].Mappable)
}

func TestMappable(t *testing.T) {
	svc, cleanup := setupService(t, true)
	defer cleanup()

	for fieldType, expected := range map[string]bool{
		"text":         true,
		"textarea":     true,
		"number":       true,
		"email":        true,
		"url":          true,
		"password":     true,
		"phone_number": true,
		"repeater":     false,
		"gallery":      false,
		"relationship": false,
	} {
		desc := &importer.FieldDescriptor{Type: fieldType}
		assert.Equal(t, expected, svc.Mappable(desc), fieldType)
	}

	assert.False(t, svc.Mappable(nil))
}

func TestUpdateField(t *testing.T) {
	svc, cleanup := setupService(t, true)
	defer cleanup()

	require.NoError(t, svc.RegisterField(textField()))

	assert.True(t, svc.UpdateField("field_abc123", "first value", 7))
	assert.True(t, svc.UpdateField("field_abc123", float64(42), 7))
	assert.False(t, svc.UpdateField("field_unknown", "x", 7))

	values, err := svc.ValuesForPost(7)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "42", values[0].Value)
}

func TestDisabledServiceBehavesAsAbsent(t *testing.T) {
	svc, cleanup := setupService(t, false)
	defer cleanup()

	fields, err := svc.FieldsForPostType("post")
	require.NoError(t, err)
	assert.Empty(t, fields)

	desc, err := svc.FieldByKey("field_abc123")
	require.NoError(t, err)
	assert.Nil(t, desc)

	assert.False(t, svc.UpdateField("field_abc123", "v", 1))
}
