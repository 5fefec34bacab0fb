package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondImportError maps a coded importer error onto an HTTP status and
// sends it as JSON. The message is already operator-safe.
func respondImportError(c *gin.Context, err *importer.Error) {
	c.JSON(statusForCode(err.Code), ErrorResponse{Error: err.Message, Code: string(err.Code)})
}

// statusForCode picks the HTTP status for an importer error code.
// Validation and structure problems are client errors; host-side failures
// are server errors.
func statusForCode(code importer.ErrorCode) int {
	switch code {
	case importer.CodeSecurityCheckFailed:
		return http.StatusForbidden
	case importer.CodeExpiredData:
		return http.StatusGone
	case importer.CodeFileReadError, importer.CodeUploadError, importer.CodePostInsertFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
