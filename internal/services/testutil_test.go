package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// newTestDB opens a fresh named in-memory SQLite database per test.
// MaxOpenConns(1) serializes connections so concurrent test writers hit
// the retry paths instead of SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Job{},
		&models.Application{},
		&models.RoundToken{},
		&models.LedgerEntry{},
	))
	return db
}

func newTestProfile(t *testing.T, db *gorm.DB, email, role string, balance int) *models.Profile {
	t.Helper()
	p := &models.Profile{
		Email:        email,
		FullName:     "Test " + email,
		Role:         role,
		TokenBalance: balance,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func newTestJob(t *testing.T, db *gorm.DB, recruiterID, title string) *models.Job {
	t.Helper()
	j := &models.Job{
		RecruiterID: recruiterID,
		Title:       title,
		Company:     "Acme",
		Description: "desc",
		Type:        "full-time",
		IsActive:    true,
	}
	require.NoError(t, db.Create(j).Error)
	return j
}
