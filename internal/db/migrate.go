package db

import (
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/types"
)

// AutoMigrateAll keeps the schema current. IDs are assigned in the
// services with uuid.New(), never by the database, so the same models
// migrate cleanly on Postgres and on the sqlite test database.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		// identity
		&types.User{},

		// catalog hierarchy, parents first
		&types.Stream{},
		&types.Semester{},
		&types.Subject{},
		&types.Note{},
	)
}
