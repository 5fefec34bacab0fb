package http

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwahlfeldt/bulk-post-importer/internal/audit"
	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/mapping"
	"github.com/cwahlfeldt/bulk-post-importer/internal/notices"
	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

// ImportRequest is the second-step payload: the staging token from the
// upload step, the destination type, and the raw mapping structure. The
// mapping is deliberately untyped; the sanitizer accepts anything.
type ImportRequest struct {
	Token    string `json:"token"`
	PostType string `json:"post_type"`
	Mapping  any    `json:"mapping"`
}

type ImportController struct {
	staging StagingStore
	runner  BatchRunner
	auditor *audit.Auditor
	notices *notices.Manager
}

// NewImportController builds the import-step controller. auditor and
// noticeManager may be nil.
func NewImportController(stagingStore StagingStore, runner BatchRunner, auditor *audit.Auditor, noticeManager *notices.Manager) *ImportController {
	return &ImportController{
		staging: stagingStore,
		runner:  runner,
		auditor: auditor,
		notices: noticeManager,
	}
}

// Import retrieves a staged upload by token and runs the batch against the
// content store. The staged entry is consumed: it is deleted before the
// batch runs, so a second import with the same token fails as expired.
func (ic *ImportController) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondImportError(c, importer.NewError(importer.CodeMissingData,
			"Missing required data (staging token, post type, or mapping info). Please start over."))
		return
	}
	if req.Token == "" || req.PostType == "" || req.Mapping == nil {
		respondImportError(c, importer.NewError(importer.CodeMissingData,
			"Missing required data (staging token, post type, or mapping info). Please start over."))
		return
	}

	postType := utils.SanitizeKey(req.PostType)
	spec := mapping.Sanitize(req.Mapping)

	staged, found, err := ic.staging.Get(req.Token)
	if err != nil {
		respondInternalError(c, err, "staging lookup")
		return
	}
	if !found {
		respondImportError(c, importer.NewError(importer.CodeExpiredData,
			"Import data expired or was invalid. Please start over."))
		return
	}

	if staged.PostType != postType {
		// The staged entry is useless now, drop it so retries start clean.
		_ = ic.staging.Delete(req.Token)
		respondImportError(c, importer.NewError(importer.CodePostTypeMismatch,
			"Post type mismatch between steps. Please start over."))
		return
	}

	if err := ic.staging.Delete(req.Token); err != nil {
		respondInternalError(c, err, "staging delete")
		return
	}

	outcome, runErr := ic.runner.Run(staged.Records, spec, postType, staged.FileName)
	if runErr != nil {
		respondInternalError(c, runErr, "batch import")
		return
	}

	if ic.auditor != nil {
		if _, auditErr := ic.auditor.SaveOutcome(postType, outcome); auditErr != nil {
			log.Printf("Failed to save import audit record: %v", auditErr)
		}
	}

	ic.addNotice(c, outcome)

	c.JSON(http.StatusOK, outcome)
}

// addNotice records a session notice summarizing the run, mirroring the
// post-import admin notice of a traditional CMS flow.
func (ic *ImportController) addNotice(c *gin.Context, outcome *importer.Outcome) {
	if ic.notices == nil {
		return
	}

	noticeType := notices.TypeSuccess
	if outcome.SkippedCount > 0 {
		noticeType = notices.TypeWarning
	}
	ic.notices.Add(c.Request, noticeType, fmt.Sprintf(
		"Import complete: %d imported, %d skipped of %d items from %s.",
		outcome.ImportedCount, outcome.SkippedCount, outcome.TotalItems,
		outcome.OriginalFileName))
}
