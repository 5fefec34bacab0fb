package entities

import (
	"time"
)

// StagedImport holds a parsed upload between the upload and import steps.
// Rows are read once: the import step deletes the row when it retrieves it.
type StagedImport struct {
	Token     string    `gorm:"primaryKey;size:100" json:"token"`
	Data      []byte    `gorm:"type:blob" json:"-"` // JSON-encoded records
	PostType  string    `gorm:"size:50" json:"post_type"`
	FileName  string    `gorm:"size:255" json:"file_name"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (StagedImport) TableName() string {
	return "staged_imports"
}
