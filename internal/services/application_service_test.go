package services

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyReq(applicantID string) *dtos.ApplicationRequest {
	return &dtos.ApplicationRequest{
		ApplicantID: applicantID,
		ResumeURL:   "resumes/" + applicantID + "/resume.pdf",
	}
}

func TestApplySpendsOneJobbie(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	recruiter := newTestProfile(t, db, "recruiter@acme.com", models.RoleRecruiter, 0)
	job := newTestJob(t, db, recruiter.ID, "Backend Engineer")
	user := newTestProfile(t, db, "a@example.com", models.RoleApplicant, 1)

	app, err := apps.Apply(job.ID, applyReq(user.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, app.QueuePosition)
	assert.Equal(t, models.ApplicationPending, app.Status)

	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", user.ID).Error)
	assert.Equal(t, 0, profile.TokenBalance)

	var entries []models.LedgerEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.LedgerSpend, entries[0].Type)
	assert.Equal(t, 1, entries[0].Amount)
	assert.Contains(t, entries[0].Reason, "Backend Engineer")
	assert.Contains(t, entries[0].Reason, "Acme")

	// Balance is gone now; a second job is out of reach
	job2 := newTestJob(t, db, recruiter.ID, "Data Engineer")
	_, err = apps.Apply(job2.ID, applyReq(user.ID))
	assert.ErrorIs(t, err, apperr.ErrInsufficientBalance)

	// Failed apply left nothing behind
	var count int64
	require.NoError(t, db.Model(&models.Application{}).Where("job_id = ?", job2.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.LedgerEntry{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestApplyTwiceToSameJob(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	recruiter := newTestProfile(t, db, "recruiter@acme.com", models.RoleRecruiter, 0)
	job := newTestJob(t, db, recruiter.ID, "Backend Engineer")
	user := newTestProfile(t, db, "a@example.com", models.RoleApplicant, 5)

	_, err := apps.Apply(job.ID, applyReq(user.ID))
	require.NoError(t, err)

	_, err = apps.Apply(job.ID, applyReq(user.ID))
	assert.ErrorIs(t, err, apperr.ErrDuplicateApplication)

	// Only one jobbie spent
	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", user.ID).Error)
	assert.Equal(t, 4, profile.TokenBalance)
}

func TestApplyUnknownJobOrApplicant(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	recruiter := newTestProfile(t, db, "recruiter@acme.com", models.RoleRecruiter, 0)
	job := newTestJob(t, db, recruiter.ID, "Backend Engineer")

	_, err := apps.Apply("missing", applyReq("whoever"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = apps.Apply(job.ID, applyReq("missing"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

// Queue positions are serialized per job, so concurrent applicants get
// exactly 1..N.
func TestApplyConcurrentPositions(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	recruiter := newTestProfile(t, db, "recruiter@acme.com", models.RoleRecruiter, 0)
	job := newTestJob(t, db, recruiter.ID, "Backend Engineer")

	const n = 10
	users := make([]*models.Profile, n)
	for i := range users {
		users[i] = newTestProfile(t, db, fmt.Sprintf("user%d@example.com", i), models.RoleApplicant, 1)
	}

	var wg sync.WaitGroup
	positions := make([]int, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			app, err := apps.Apply(job.ID, applyReq(users[i].ID))
			if err != nil {
				errs[i] = err
				return
			}
			positions[i] = app.QueuePosition
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "apply %d", i)
	}
	sort.Ints(positions)
	for i, pos := range positions {
		assert.Equal(t, i+1, pos)
	}
}

func TestListForJobOrdering(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db)
	recruiter := newTestProfile(t, db, "recruiter@acme.com", models.RoleRecruiter, 0)
	job := newTestJob(t, db, recruiter.ID, "Backend Engineer")

	for i := 0; i < 3; i++ {
		user := newTestProfile(t, db, fmt.Sprintf("user%d@example.com", i), models.RoleApplicant, 1)
		_, err := apps.Apply(job.ID, applyReq(user.ID))
		require.NoError(t, err)
	}

	listed, err := apps.ListForJob(job.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, app := range listed {
		assert.Equal(t, i+1, app.QueuePosition)
	}

	_, err = apps.ListForJob("missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
