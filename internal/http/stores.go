package http

import (
	"github.com/cwahlfeldt/bulk-post-importer/internal/entities"
	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/mapping"
	"github.com/cwahlfeldt/bulk-post-importer/internal/pluginfields"
	"github.com/cwahlfeldt/bulk-post-importer/internal/staging"
)

// This file consolidates the store interfaces used by HTTP controllers.
// Each controller depends only on the methods it actually uses.

// PostTypeStore provides read access to the post type registry.
type PostTypeStore interface {
	PostTypeExists(name string) (bool, error)
	PostTypes() ([]entities.PostType, error)
}

// StagingStore holds parsed uploads between the upload and import steps.
type StagingStore interface {
	GenerateToken() (string, error)
	Put(token string, staged *staging.Staged) error
	Get(token string) (*staging.Staged, bool, error)
	Delete(token string) error
}

// BatchRunner executes one staged batch against the content store.
type BatchRunner interface {
	Run(records []importer.Record, spec *mapping.Spec, postType, fileName string) (*importer.Outcome, error)
}

// FieldLister exposes the plugin-field registry to the mapping UI.
type FieldLister interface {
	Active() bool
	FieldsForPostType(postType string) ([]pluginfields.FieldInfo, error)
	AllowedTypes() map[string]string
}
