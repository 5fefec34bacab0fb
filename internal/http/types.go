package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PostTypeInfo is one registered destination type.
type PostTypeInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

type PostTypesController struct {
	types PostTypeStore
}

func NewPostTypesController(types PostTypeStore) *PostTypesController {
	return &PostTypesController{types: types}
}

// List returns the registered post types available as import destinations.
func (p *PostTypesController) List(c *gin.Context) {
	registered, err := p.types.PostTypes()
	if err != nil {
		respondInternalError(c, err, "post type listing")
		return
	}

	infos := make([]PostTypeInfo, len(registered))
	for i, t := range registered {
		infos[i] = PostTypeInfo{Name: t.Name, Label: t.Label}
	}

	c.JSON(http.StatusOK, gin.H{"types": infos})
}
