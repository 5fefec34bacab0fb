// Package audit persists a JSON record of every import run for later
// inspection.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
)

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// auditEntry is the on-disk shape of one saved run.
type auditEntry struct {
	PostType string            `json:"post_type"`
	Outcome  *importer.Outcome `json:"outcome"`
}

// SaveOutcome writes one import outcome as an indented JSON file with a UUID
// filename. Returns the filename.
func (a *Auditor) SaveOutcome(postType string, outcome *importer.Outcome) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", uuid.New().String())
	path := filepath.Join(a.AuditDir, filename)

	data, err := json.MarshalIndent(auditEntry{PostType: postType, Outcome: outcome}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal outcome to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved import audit file: %s", path)

	return filename, nil
}

func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
