package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/cwahlfeldt/bulk-post-importer/internal/entities"
	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

// CreatePost persists one creation request as a post with its meta
// attachments. Duplicate meta keys keep the last value, matching mapping
// overwrite semantics. Returns the new post's ID.
func (d *Database) CreatePost(req *importer.CreationRequest) (uint, error) {
	exists, err := d.PostTypeExists(req.PostType)
	if err != nil {
		return 0, fmt.Errorf("failed to check post type: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("unknown post type %q", req.PostType)
	}

	post := entities.Post{
		Type:     req.PostType,
		Status:   req.Status,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		AuthorID: req.AuthorID,
		Date:     req.Date,
		DateGMT:  req.DateGMT,
	}

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		for _, meta := range collapseMeta(req) {
			meta.PostID = post.ID
			if err := tx.Create(&meta).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	if !d.deferCounts {
		// Counts are a cache; creation already succeeded.
		if err := d.recountPostType(req.PostType); err != nil {
			log.Printf("failed to update count for %s: %v", req.PostType, err)
		}
	}

	return post.ID, nil
}

// collapseMeta flattens the ordered meta entries plus the extra standard
// fields into rows, later duplicate keys overwriting earlier ones.
func collapseMeta(req *importer.CreationRequest) []entities.PostMeta {
	values := map[string]string{}
	order := []string{}

	for _, entry := range req.Meta {
		if _, seen := values[entry.Key]; !seen {
			order = append(order, entry.Key)
		}
		values[entry.Key] = utils.Stringify(entry.Value)
	}
	for key, value := range req.Extra {
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = value
	}

	rows := make([]entities.PostMeta, 0, len(order))
	for _, key := range order {
		rows = append(rows, entities.PostMeta{Key: key, Value: values[key]})
	}
	return rows
}

// StartBulk suspends per-type count maintenance for the duration of a batch.
func (d *Database) StartBulk() {
	d.deferCounts = true
}

// FinishBulk re-enables count maintenance and recomputes every cached count.
func (d *Database) FinishBulk() {
	d.deferCounts = false

	types, err := d.PostTypes()
	if err != nil {
		return
	}
	for _, t := range types {
		_ = d.recountPostType(t.Name)
	}
}

func (d *Database) recountPostType(postType string) error {
	var count int64
	if err := d.DB.Model(&entities.Post{}).Where("type = ?", postType).Count(&count).Error; err != nil {
		return err
	}

	var row entities.PostTypeCount
	result := d.DB.Where("post_type = ?", postType).First(&row)
	if result.Error == gorm.ErrRecordNotFound {
		return d.DB.Create(&entities.PostTypeCount{PostType: postType, Count: count}).Error
	}
	if result.Error != nil {
		return result.Error
	}

	return d.DB.Model(&row).Update("count", count).Error
}

// PostCount returns the cached count for a type, recomputing when no cache
// row exists yet.
func (d *Database) PostCount(postType string) (int64, error) {
	var row entities.PostTypeCount
	result := d.DB.Where("post_type = ?", postType).First(&row)
	if result.Error == gorm.ErrRecordNotFound {
		if err := d.recountPostType(postType); err != nil {
			return 0, err
		}
		if err := d.DB.Where("post_type = ?", postType).First(&row).Error; err != nil {
			return 0, err
		}
		return row.Count, nil
	}
	if result.Error != nil {
		return 0, result.Error
	}
	return row.Count, nil
}

// GetPostByID loads a post with its meta attachments.
func (d *Database) GetPostByID(id uint) (*entities.Post, error) {
	var post entities.Post
	err := d.DB.Preload("Meta").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}
