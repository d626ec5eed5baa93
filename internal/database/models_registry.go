package database

import "github.com/Karan-RajKR/social-lite/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models,
// ordered so referenced tables are created first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	}
}
