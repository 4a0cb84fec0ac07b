package services

import (
	"errors"
	"fmt"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"gorm.io/gorm"
)

// RoundQueueEntry is a token joined with enough of the holder's profile
// for the recruiter's queue screen.
type RoundQueueEntry struct {
	models.RoundToken
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// QueueService builds the read-side views over tokens: the recruiter's
// per-round queue and the candidate's own status. No caching; every
// call reflects current state.
type QueueService struct {
	DB *gorm.DB

	// Assumed max queue size for the progress heuristic
	MaxQueueSize int
}

func NewQueueService(db *gorm.DB, maxQueueSize int) *QueueService {
	if maxQueueSize <= 0 {
		maxQueueSize = 50
	}
	return &QueueService{DB: db, MaxQueueSize: maxQueueSize}
}

// ListRound returns every token in the (job, round) partition joined
// with the holder's summary, ascending by token number.
func (s *QueueService) ListRound(jobID string, roundNumber int) ([]RoundQueueEntry, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, apperr.ErrNotFound)
		}
		return nil, err
	}
	var entries []RoundQueueEntry
	err := s.DB.Model(&models.RoundToken{}).
		Select("round_tokens.*, profiles.full_name, profiles.email, profiles.avatar_url").
		Joins("JOIN profiles ON profiles.id = round_tokens.user_id").
		Where("round_tokens.job_id = ? AND round_tokens.round_number = ?", jobID, roundNumber).
		Order("round_tokens.token_number ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SelfStatus returns the user's tokens across rounds, newest first.
// jobID narrows to one job when non-empty.
func (s *QueueService) SelfStatus(userID, jobID string) ([]models.RoundToken, error) {
	var user models.Profile
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", userID, apperr.ErrNotFound)
		}
		return nil, err
	}
	q := s.DB.Preload("Job").Where("user_id = ?", userID)
	if jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}
	var tokens []models.RoundToken
	if err := q.Order("created_at DESC").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// ProgressEstimate turns a queue position into a 0-100 percentage for
// the dashboard progress bar. It assumes a fixed max queue size and is
// an estimate only; the authoritative fields are position and status.
func (s *QueueService) ProgressEstimate(position int) float64 {
	p := (float64(s.MaxQueueSize-position) / float64(s.MaxQueueSize)) * 100
	if p < 0 {
		return 0
	}
	return p
}
