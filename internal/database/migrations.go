package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/employee-management-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every table managed by Migrate.
var Models = []any{
	&models.Account{},
	&models.Task{},
	&models.TaskStatusEvent{},
	&models.LeaveRequest{},
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	slog.Info("running database migrations")
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Indexes are declared on the models; report any the dialect skipped.
	indexes := []struct {
		model any
		field string
	}{
		{&models.Account{}, "Email"},
		{&models.Account{}, "OAuthEmail"},
		{&models.Task{}, "AssignedToID"},
		{&models.TaskStatusEvent{}, "TaskID"},
		{&models.LeaveRequest{}, "UserID"},
	}
	for _, idx := range indexes {
		if !db.Migrator().HasIndex(idx.model, idx.field) {
			slog.Warn("index missing after migration", "model", fmt.Sprintf("%T", idx.model), "field", idx.field)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
