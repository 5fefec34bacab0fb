// Package staging holds parsed uploads between the upload and import steps,
// keyed by an opaque token with a finite TTL.
package staging

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cwahlfeldt/bulk-post-importer/internal/entities"
	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
)

// TokenPrefix namespaces staging tokens in storage.
const TokenPrefix = "bpi_import_data_"

// Staged is one parsed upload awaiting its import step.
type Staged struct {
	Records  []importer.Record
	PostType string
	FileName string
}

// Store is the DB-backed staging store. Entries expire after the configured
// TTL; Get does not delete, the import step deletes explicitly once it has
// verified the entry (read-once handoff).
type Store struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl, now: time.Now}
}

// GenerateToken returns a fresh opaque staging token.
func (s *Store) GenerateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate staging token: %w", err)
	}
	return TokenPrefix + hex.EncodeToString(buf), nil
}

// Put stages an upload under the given token.
func (s *Store) Put(token string, staged *Staged) error {
	data, err := json.Marshal(staged.Records)
	if err != nil {
		return fmt.Errorf("failed to encode staged records: %w", err)
	}

	row := entities.StagedImport{
		Token:     token,
		Data:      data,
		PostType:  staged.PostType,
		FileName:  staged.FileName,
		ExpiresAt: s.now().Add(s.ttl),
	}

	return s.db.Create(&row).Error
}

// Get retrieves a staged upload. The second return is false when the token
// is unknown or the entry has expired; expired rows are deleted on sight.
func (s *Store) Get(token string) (*Staged, bool, error) {
	var row entities.StagedImport
	result := s.db.Where("token = ?", token).First(&row)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if result.Error != nil {
		return nil, false, result.Error
	}

	if row.ExpiresAt.Before(s.now()) {
		_ = s.Delete(token)
		return nil, false, nil
	}

	var records []importer.Record
	if err := json.Unmarshal(row.Data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to decode staged records: %w", err)
	}

	return &Staged{
		Records:  records,
		PostType: row.PostType,
		FileName: row.FileName,
	}, true, nil
}

// Delete removes a staged upload.
func (s *Store) Delete(token string) error {
	return s.db.Where("token = ?", token).Delete(&entities.StagedImport{}).Error
}

// PurgeExpired deletes every entry past its expiry and returns how many
// were removed.
func (s *Store) PurgeExpired() (int64, error) {
	result := s.db.Where("expires_at < ?", s.now()).Delete(&entities.StagedImport{})
	return result.RowsAffected, result.Error
}
