package database

import (
	"fmt"

	"github.com/yukikurage/join-board-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models returns every persisted model, parents before children.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.AuthToken{},
		&models.Contact{},
		&models.Task{},
		&models.Subtask{},
		&models.TaskAssignment{},
	}
}

// Migrate creates or updates the schema of all models.
func Migrate(db *gorm.DB) error {
	zap.L().Info("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	zap.L().Info("database migrations completed")
	return nil
}

// Reset drops every table, children first.
func Reset(db *gorm.DB) error {
	tables := Models()
	for i := len(tables) - 1; i >= 0; i-- {
		if !db.Migrator().HasTable(tables[i]) {
			continue
		}
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	zap.L().Warn("all tables dropped")
	return nil
}
