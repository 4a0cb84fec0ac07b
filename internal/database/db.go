package database

import (
	"log"

	"github.com/glebarez/sqlite"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database and runs migrations. With an empty DSN it
// falls back to a shared in-memory SQLite database, which is what the
// tests and local dev without Postgres use.
func Connect(dsn string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	cfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}
	if dsn == "" {
		log.Println("DATABASE_DSN not set, using in-memory SQLite")
		// cache=shared lets every connection see the same in-memory DB
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
	} else {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	}
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	err = db.AutoMigrate(
		&models.Profile{},
		&models.Job{},
		&models.Application{},
		&models.RoundToken{},
		&models.LedgerEntry{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	return db
}
