package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwahlfeldt/bulk-post-importer/internal/notices"
)

type NoticesController struct {
	manager *notices.Manager
}

func NewNoticesController(manager *notices.Manager) *NoticesController {
	return &NoticesController{manager: manager}
}

// List returns pending session notices and clears them.
func (n *NoticesController) List(c *gin.Context) {
	if n.manager == nil {
		c.JSON(http.StatusOK, gin.H{"notices": []notices.Notice{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notices": n.manager.Pop(c.Request)})
}
