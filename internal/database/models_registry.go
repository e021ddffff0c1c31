package database

import "commune/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Community{},
		&models.Thread{},
		&models.ThreadLike{},
		&models.Event{},
		&models.EventInterest{},
		&models.Channel{},
		&models.Message{},
		&models.Plan{},
		&models.Subscription{},
	}
}
