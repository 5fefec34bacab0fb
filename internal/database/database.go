package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cwahlfeldt/bulk-post-importer/internal/entities"
)

var defaultPostTypes = []entities.PostType{
	{Name: "post", Label: "Posts"},
	{Name: "page", Label: "Pages"},
}

var defaultStatuses = []entities.PostStatus{
	{Name: "publish", Label: "Published"},
	{Name: "draft", Label: "Draft"},
	{Name: "pending", Label: "Pending Review"},
	{Name: "private", Label: "Private"},
	{Name: "future", Label: "Scheduled"},
}

type Database struct {
	DB *gorm.DB

	// deferCounts suspends per-type count maintenance during bulk imports.
	deferCounts bool
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Post{},
		&entities.PostMeta{},
		&entities.PostType{},
		&entities.PostStatus{},
		&entities.PostTypeCount{},
		&entities.PluginField{},
		&entities.PluginFieldValue{},
		&entities.StagedImport{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedRegistries(); err != nil {
		return nil, fmt.Errorf("failed to seed registries: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedRegistries() error {
	for _, postType := range defaultPostTypes {
		var existing entities.PostType
		result := d.DB.Where("name = ?", postType.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&postType).Error; err != nil {
				return fmt.Errorf("failed to create post type %s: %w", postType.Name, err)
			}
		}
	}

	for _, status := range defaultStatuses {
		var existing entities.PostStatus
		result := d.DB.Where("name = ?", status.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&status).Error; err != nil {
				return fmt.Errorf("failed to create status %s: %w", status.Name, err)
			}
		}
	}

	return nil
}

// RegisterPostType adds a destination type to the registry, ignoring
// duplicates.
func (d *Database) RegisterPostType(name, label string) error {
	var existing entities.PostType
	result := d.DB.Where("name = ?", name).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		return d.DB.Create(&entities.PostType{Name: name, Label: label}).Error
	}
	return result.Error
}

// PostTypes returns all registered destination types.
func (d *Database) PostTypes() ([]entities.PostType, error) {
	var types []entities.PostType
	if err := d.DB.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// PostTypeExists reports whether a destination type is registered.
func (d *Database) PostTypeExists(name string) (bool, error) {
	var count int64
	err := d.DB.Model(&entities.PostType{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RegisteredStatuses returns the names of all registered content statuses.
func (d *Database) RegisteredStatuses() ([]string, error) {
	var statuses []entities.PostStatus
	if err := d.DB.Order("id").Find(&statuses).Error; err != nil {
		return nil, err
	}

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.Name
	}
	return names, nil
}
