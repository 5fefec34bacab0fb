package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session middleware carries cross-request notices
	if cfg.NoticeManager != nil {
		router.Use(cfg.NoticeManager.LoadSave())
	}

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	upload := NewUploadController(cfg.Database, cfg.Staging, cfg.UploadMaxBytes)
	importController := NewImportController(cfg.Staging, cfg.Runner, cfg.Auditor, cfg.NoticeManager)
	fields := NewFieldsController(cfg.Fields)
	types := NewPostTypesController(cfg.Database)
	noticesController := NewNoticesController(cfg.NoticeManager)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Two-step import flow
	router.POST("/api/import/upload", upload.Upload)
	router.POST("/api/import/run", importController.Import)

	// Mapping form data
	router.GET("/api/fields", fields.List)
	router.GET("/api/types", types.List)

	// Session notices
	router.GET("/api/notices", noticesController.List)

	return router
}
