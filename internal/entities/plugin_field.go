package entities

import (
	"time"
)

// PluginField describes an externally-registered custom field attached to a
// post type. Only fields with a scalar type may be populated by the importer.
type PluginField struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Name      string    `gorm:"size:100" json:"name"`
	Label     string    `gorm:"size:255" json:"label"`
	Type      string    `gorm:"size:50" json:"type"`
	PostType  string    `gorm:"index;size:50" json:"post_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (PluginField) TableName() string {
	return "plugin_fields"
}

// PluginFieldValue stores one imported value for a plugin field on a post.
type PluginFieldValue struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"index" json:"post_id"`
	FieldKey string `gorm:"index;size:100" json:"field_key"`
	Value    string `gorm:"type:text" json:"value"`
}

func (PluginFieldValue) TableName() string {
	return "plugin_field_values"
}
