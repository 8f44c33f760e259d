package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the CGO-free "sqlite" driver

	"artbridge/internal/domain/creation"
	"artbridge/internal/domain/status"
)

// Connect opens the storage backend for the given DSN. Postgres URLs go to
// the postgres driver; anything else is treated as a SQLite path (":memory:"
// included), which keeps local development and tests CGO-free.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the three persisted tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&creation.Prompt{},
		&creation.GalleryItem{},
		&status.StatusCheck{},
	)
}
