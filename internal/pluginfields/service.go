// Package pluginfields implements the constrained-type custom-field
// subsystem: discovery of externally-declared fields per post type, a scalar
// type allowlist, and best-effort value updates on created posts.
package pluginfields

import (
	"gorm.io/gorm"

	"github.com/cwahlfeldt/bulk-post-importer/internal/entities"
	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

// Field types that may be populated from scalar import data. Structured
// types (repeater, gallery, relationship, file, ...) are never written by
// the importer regardless of mapping attempts.
var allowedTypes = map[string]string{
	"text":         "Text",
	"textarea":     "Textarea",
	"number":       "Number",
	"email":        "Email",
	"url":          "URL",
	"password":     "Password",
	"phone_number": "Phone Number",
}

// FieldInfo is a field descriptor plus its mappable flag, for mapping UIs.
type FieldInfo struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Mappable bool   `json:"mappable"`
}

// Service is the DB-backed plugin-field registry. When disabled it behaves
// like an absent subsystem: discovery returns nothing and updates fail.
type Service struct {
	db      *gorm.DB
	enabled bool
}

func NewService(db *gorm.DB, enabled bool) *Service {
	return &Service{db: db, enabled: enabled}
}

// Active reports whether the subsystem is available.
func (s *Service) Active() bool {
	return s.enabled && s.db != nil
}

// AllowedTypes returns the scalar type allowlist with display labels.
func (s *Service) AllowedTypes() map[string]string {
	out := make(map[string]string, len(allowedTypes))
	for k, v := range allowedTypes {
		out[k] = v
	}
	return out
}

// RegisterField declares a field for a post type. Existing keys are updated
// in place.
func (s *Service) RegisterField(field entities.PluginField) error {
	var existing entities.PluginField
	result := s.db.Where("key = ?", field.Key).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		return s.db.Create(&field).Error
	}
	if result.Error != nil {
		return result.Error
	}

	existing.Name = field.Name
	existing.Label = field.Label
	existing.Type = field.Type
	existing.PostType = field.PostType
	return s.db.Save(&existing).Error
}

// FieldsForPostType lists the declared fields for a post type with their
// mappable status. Returns an empty list when the subsystem is inactive.
func (s *Service) FieldsForPostType(postType string) ([]FieldInfo, error) {
	if !s.Active() {
		return []FieldInfo{}, nil
	}

	var fields []entities.PluginField
	if err := s.db.Where("post_type = ?", postType).Order("id").Find(&fields).Error; err != nil {
		return nil, err
	}

	infos := make([]FieldInfo, len(fields))
	for i, f := range fields {
		_, mappable := allowedTypes[f.Type]
		infos[i] = FieldInfo{
			Key:      f.Key,
			Name:     f.Name,
			Label:    f.Label,
			Type:     f.Type,
			Mappable: mappable,
		}
	}
	return infos, nil
}

// FieldByKey resolves a field descriptor, or nil when the key is unknown or
// the subsystem is inactive.
func (s *Service) FieldByKey(key string) (*importer.FieldDescriptor, error) {
	if !s.Active() {
		return nil, nil
	}

	var field entities.PluginField
	result := s.db.Where("key = ?", key).First(&field)
	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &importer.FieldDescriptor{
		Key:   field.Key,
		Name:  field.Name,
		Label: field.Label,
		Type:  field.Type,
	}, nil
}

// Mappable reports whether a field's declared type is in the scalar
// allowlist.
func (s *Service) Mappable(field *importer.FieldDescriptor) bool {
	if field == nil {
		return false
	}
	_, ok := allowedTypes[field.Type]
	return ok
}

// UpdateField writes one value best-effort; false means the caller should
// warn rather than fail the item.
func (s *Service) UpdateField(key string, value any, postID uint) bool {
	if !s.Active() {
		return false
	}

	var field entities.PluginField
	if err := s.db.Where("key = ?", key).First(&field).Error; err != nil {
		return false
	}

	row := entities.PluginFieldValue{
		PostID:   postID,
		FieldKey: key,
		Value:    utils.Stringify(value),
	}

	var existing entities.PluginFieldValue
	result := s.db.Where("post_id = ? AND field_key = ?", postID, key).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		return s.db.Create(&row).Error == nil
	}
	if result.Error != nil {
		return false
	}

	return s.db.Model(&existing).Update("value", row.Value).Error == nil
}

// ValuesForPost returns all plugin-field values attached to a post.
func (s *Service) ValuesForPost(postID uint) ([]entities.PluginFieldValue, error) {
	var values []entities.PluginFieldValue
	if err := s.db.Where("post_id = ?", postID).Order("id").Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
