package services

import (
	"testing"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProfileWelcomeBonus(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db, 10)

	applicant, err := profiles.CreateProfile(&dtos.ProfileCreationRequest{
		Email:    "new@example.com",
		FullName: "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleApplicant, applicant.Role)
	assert.Equal(t, 10, applicant.TokenBalance)

	var entries []models.LedgerEntry
	require.NoError(t, db.Where("user_id = ?", applicant.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.LedgerEarn, entries[0].Type)
	assert.Equal(t, 10, entries[0].Amount)
	assert.Equal(t, "Welcome bonus", entries[0].Reason)
}

func TestCreateRecruiterNoBonus(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db, 10)

	recruiter, err := profiles.CreateProfile(&dtos.ProfileCreationRequest{
		Email: "hr@acme.com",
		Role:  models.RoleRecruiter,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, recruiter.TokenBalance)

	var count int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Where("user_id = ?", recruiter.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProfileDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileService(db, 10)

	_, err := profiles.CreateProfile(&dtos.ProfileCreationRequest{Email: "dup@example.com"})
	require.NoError(t, err)

	// Re-bootstrap must not double-credit the welcome bonus
	_, err = profiles.CreateProfile(&dtos.ProfileCreationRequest{Email: "dup@example.com"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
