package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/pluginfields"
	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

// FieldsResponse lists everything the mapping form can target for one
// destination type.
type FieldsResponse struct {
	Standard     []importer.StandardFieldInfo `json:"standard"`
	Plugin       []pluginfields.FieldInfo     `json:"plugin"`
	PluginActive bool                         `json:"plugin_active"`
	AllowedTypes map[string]string            `json:"allowed_types"`
}

type FieldsController struct {
	fields FieldLister
}

func NewFieldsController(fields FieldLister) *FieldsController {
	return &FieldsController{fields: fields}
}

// List returns the standard field catalogue plus the plugin fields declared
// for the requested post type.
func (f *FieldsController) List(c *gin.Context) {
	postType := utils.SanitizeKey(c.Query("post_type"))
	if postType == "" {
		respondBadRequest(c, "post_type is required")
		return
	}

	resp := FieldsResponse{
		Standard:     importer.StandardFields(),
		Plugin:       []pluginfields.FieldInfo{},
		AllowedTypes: map[string]string{},
	}

	if f.fields != nil && f.fields.Active() {
		plugin, err := f.fields.FieldsForPostType(postType)
		if err != nil {
			respondInternalError(c, err, "plugin field listing")
			return
		}
		if plugin != nil {
			resp.Plugin = plugin
		}
		resp.PluginActive = true
		resp.AllowedTypes = f.fields.AllowedTypes()
	}

	c.JSON(http.StatusOK, resp)
}
