package http

import (
	"github.com/cwahlfeldt/bulk-post-importer/internal/audit"
	"github.com/cwahlfeldt/bulk-post-importer/internal/database"
	"github.com/cwahlfeldt/bulk-post-importer/internal/notices"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter for
// better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Staging  StagingStore
	Runner   BatchRunner
	Fields   FieldLister
	Auditor  *audit.Auditor

	// Session notices (optional)
	NoticeManager *notices.Manager

	// Upload limits
	UploadMaxBytes int64

	// CSRF protection is disabled when the secret is empty
	CSRFSecret    []byte
	SecureCookies bool

	// Application info
	Version string
}
