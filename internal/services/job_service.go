package services

import (
	"errors"
	"fmt"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

// CreateJob posts a new job for a recruiter.
func (s *JobService) CreateJob(req *dtos.JobCreationRequest) (*models.Job, error) {
	var recruiter models.Profile
	err := s.DB.First(&recruiter, "id = ?", req.RecruiterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("recruiter %s: %w", req.RecruiterID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if recruiter.Role != models.RoleRecruiter {
		return nil, fmt.Errorf("profile %s is not a recruiter: %w", req.RecruiterID, apperr.ErrNotFound)
	}

	jobType := req.Type
	if jobType == "" {
		jobType = "full-time"
	}
	job := &models.Job{
		RecruiterID:  req.RecruiterID,
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Location:     req.Location,
		Type:         jobType,
		Tags:         req.Tags,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		IsActive:     true,
	}
	if err := s.DB.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// ListActive returns open postings, newest first.
func (s *JobService) ListActive() ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) GetJob(id string) (*models.Job, error) {
	var job models.Job
	err := s.DB.First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("job %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}
