package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"gorm.io/gorm"
)

// ApplicationService handles the apply flow: one jobbie spent, one
// application row with its queue position, one ledger entry, all in a
// single transaction. Queue positions are serialized per job the same
// way the token sequencer serializes per partition, so they come out
// dense and strictly increasing.
type ApplicationService struct {
	DB *gorm.DB

	jobLocks sync.Map // jobID -> *sync.Mutex
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

func (s *ApplicationService) jobLock(jobID string) *sync.Mutex {
	mu, _ := s.jobLocks.LoadOrStore(jobID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Apply joins the applicant to the job's queue. Fails with
// ErrInsufficientBalance before any row is written when the applicant
// cannot afford the application.
func (s *ApplicationService) Apply(jobID string, req *dtos.ApplicationRequest) (*models.Application, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, apperr.ErrNotFound)
		}
		return nil, err
	}

	mu := s.jobLock(jobID)
	mu.Lock()
	defer mu.Unlock()

	var app *models.Application
	for attempt := 0; attempt < assignAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 25 * time.Millisecond)
		}
		created, err := s.tryApply(&job, req)
		if err == nil {
			app = created
			break
		}
		if apperr.IsDuplicateKey(err) {
			// Either unique index can fire. If this applicant's row
			// showed up, a racing request from them got there first;
			// otherwise another writer took our queue position and we
			// recount.
			var existing models.Application
			lookupErr := s.DB.
				First(&existing, "job_id = ? AND applicant_id = ?", job.ID, req.ApplicantID).
				Error
			if lookupErr == nil {
				return nil, apperr.ErrDuplicateApplication
			}
			if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return nil, lookupErr
			}
			continue
		}
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("apply to job %s: %w", jobID, apperr.ErrConflict)
	}
	return app, nil
}

func (s *ApplicationService) tryApply(job *models.Job, req *dtos.ApplicationRequest) (*models.Application, error) {
	app := &models.Application{
		JobID:         job.ID,
		ApplicantID:   req.ApplicantID,
		ResumeURL:     req.ResumeURL,
		VideoIntroURL: req.VideoIntroURL,
		CoverLetter:   req.CoverLetter,
		Status:        models.ApplicationPending,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Application{}).
			Where("job_id = ? AND applicant_id = ?", job.ID, req.ApplicantID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrDuplicateApplication
		}

		var existing int64
		err = tx.Model(&models.Application{}).
			Where("job_id = ?", job.ID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		app.QueuePosition = int(existing) + 1

		// Debit first: if the applicant cannot pay, the transaction
		// rolls back before the application row exists.
		reason := fmt.Sprintf("Applied to %s at %s", job.Title, job.Company)
		if err := debitTx(tx, req.ApplicantID, 1, reason); err != nil {
			return err
		}

		return tx.Create(app).Error
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// ListForJob is the recruiter's queue view, ascending by position.
func (s *ApplicationService) ListForJob(jobID string) ([]models.Application, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, apperr.ErrNotFound)
		}
		return nil, err
	}
	var apps []models.Application
	err := s.DB.
		Where("job_id = ?", jobID).
		Order("queue_position ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// ListForApplicant returns the applicant's applications, newest first,
// with the job preloaded for display.
func (s *ApplicationService) ListForApplicant(applicantID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}
