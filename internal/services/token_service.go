package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"gorm.io/gorm"
)

// How often a lost race on the (job, round, token_number) index is
// retried before surfacing ErrConflict.
const assignAttempts = 3

// TokenService is the round-token sequencer and lifecycle manager.
//
// Assignment has to hand out dense, strictly increasing token numbers
// per (job, round) even under concurrent callers. A bare "read max then
// insert" races, so assignment is serialized three ways: a per-partition
// mutex for callers in this process, a transaction around the
// read-and-insert, and the unique index on (job, round, token_number)
// as the backstop for writers in other processes, with a bounded retry
// when that index fires.
type TokenService struct {
	DB *gorm.DB

	partitions sync.Map // "jobID:round" -> *sync.Mutex
}

func NewTokenService(db *gorm.DB) *TokenService {
	return &TokenService{DB: db}
}

func (s *TokenService) partitionLock(jobID string, round int) *sync.Mutex {
	key := fmt.Sprintf("%s:%d", jobID, round)
	mu, _ := s.partitions.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Assign mints the next token in the (job, round) partition for the
// user. At most one token per (user, job, round); a second call fails
// with ErrDuplicateToken and leaves existing numbers untouched.
func (s *TokenService) Assign(userID, jobID string, roundNumber int) (*models.RoundToken, error) {
	if roundNumber < 1 {
		return nil, fmt.Errorf("round number must be positive, got %d", roundNumber)
	}
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, apperr.ErrNotFound)
		}
		return nil, err
	}
	var user models.Profile
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", userID, apperr.ErrNotFound)
		}
		return nil, err
	}

	mu := s.partitionLock(jobID, roundNumber)
	mu.Lock()
	defer mu.Unlock()

	var token *models.RoundToken
	for attempt := 0; attempt < assignAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 25 * time.Millisecond)
		}
		tok, err := s.tryAssign(userID, jobID, roundNumber)
		if err == nil {
			token = tok
			break
		}
		if apperr.IsDuplicateKey(err) {
			// Could be either unique index. If the user's token showed
			// up it is a duplicate request, otherwise another writer
			// took our token number and we recompute.
			var existing models.RoundToken
			lookupErr := s.DB.
				First(&existing, "user_id = ? AND job_id = ? AND round_number = ?", userID, jobID, roundNumber).
				Error
			if lookupErr == nil {
				return nil, apperr.ErrDuplicateToken
			}
			if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return nil, lookupErr
			}
			continue
		}
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("assign token for job %s round %d: %w", jobID, roundNumber, apperr.ErrConflict)
	}
	return token, nil
}

func (s *TokenService) tryAssign(userID, jobID string, roundNumber int) (*models.RoundToken, error) {
	token := &models.RoundToken{
		UserID:      userID,
		JobID:       jobID,
		RoundNumber: roundNumber,
		Status:      models.TokenActive,
		AssignedAt:  time.Now(),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.RoundToken{}).
			Where("user_id = ? AND job_id = ? AND round_number = ?", userID, jobID, roundNumber).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.ErrDuplicateToken
		}

		var maxNumber int64
		err = tx.Model(&models.RoundToken{}).
			Where("job_id = ? AND round_number = ?", jobID, roundNumber).
			Select("COALESCE(MAX(token_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return err
		}

		token.TokenNumber = int(maxNumber) + 1
		return tx.Create(token).Error
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Expire moves an active token to expired, recording when and why.
// Tokens already in a terminal state fail with ErrInvalidTransition
// rather than silently succeeding.
func (s *TokenService) Expire(tokenID, notes string) (*models.RoundToken, error) {
	now := time.Now()
	return s.transition(tokenID, map[string]any{
		"status":     models.TokenExpired,
		"expired_at": &now,
		"notes":      notes,
	})
}

// Complete moves an active token to completed. Same terminal-state
// rules as Expire.
func (s *TokenService) Complete(tokenID, notes string) (*models.RoundToken, error) {
	return s.transition(tokenID, map[string]any{
		"status": models.TokenCompleted,
		"notes":  notes,
	})
}

func (s *TokenService) transition(tokenID string, updates map[string]any) (*models.RoundToken, error) {
	// The status guard in the WHERE clause is the whole state machine:
	// only active tokens match, so a terminal token is left unchanged.
	res := s.DB.Model(&models.RoundToken{}).
		Where("id = ? AND status = ?", tokenID, models.TokenActive).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var token models.RoundToken
		err := s.DB.First(&token, "id = ?", tokenID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("token %s: %w", tokenID, apperr.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("token %s is %s: %w", tokenID, token.Status, apperr.ErrInvalidTransition)
	}
	var token models.RoundToken
	if err := s.DB.First(&token, "id = ?", tokenID).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
