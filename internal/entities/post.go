package entities

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Type     string `gorm:"index;size:50" json:"type"`
	Status   string `gorm:"index;size:50" json:"status"`
	Title    string `gorm:"size:512" json:"title"`
	Content  string `gorm:"type:text" json:"content,omitempty"`
	Excerpt  string `gorm:"type:text" json:"excerpt,omitempty"`
	AuthorID uint   `gorm:"index" json:"author_id"`

	// Publication time in server-local and UTC form.
	Date    time.Time `json:"date"`
	DateGMT time.Time `json:"date_gmt"`

	Meta []PostMeta `gorm:"foreignKey:PostID" json:"meta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PostMeta struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PostID uint   `gorm:"index" json:"post_id"`
	Key    string `gorm:"index;size:255" json:"key"`
	Value  string `gorm:"type:text" json:"value"`
}

func (PostMeta) TableName() string {
	return "post_meta"
}

// PostType is a registered destination content type (e.g. "post", "page").
type PostType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50" json:"name"`
	Label     string    `gorm:"size:100" json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// PostStatus is a registered content status. The importer validates mapped
// status values against this registry and falls back to the default on
// anything unregistered.
type PostStatus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50" json:"name"`
	Label     string    `gorm:"size:100" json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostStatus) TableName() string {
	return "post_statuses"
}

// PostTypeCount caches the number of posts per type. Maintenance is deferred
// while a bulk import runs and recomputed once afterwards.
type PostTypeCount struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostType string `gorm:"uniqueIndex;size:50" json:"post_type"`
	Count    int64  `json:"count"`
}

func (PostTypeCount) TableName() string {
	return "post_type_counts"
}
