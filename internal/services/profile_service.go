package services

import (
	"errors"
	"fmt"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB *gorm.DB

	// Jobbies credited to new applicants, with a matching
	// "Welcome bonus" ledger entry
	WelcomeBonus int
}

func NewProfileService(db *gorm.DB, welcomeBonus int) *ProfileService {
	return &ProfileService{DB: db, WelcomeBonus: welcomeBonus}
}

// CreateProfile registers a profile from the identity provider's
// account data. Applicants get the welcome bonus exactly once; the
// unique index on email makes repeated bootstraps fail instead of
// double-crediting.
func (s *ProfileService) CreateProfile(req *dtos.ProfileCreationRequest) (*models.Profile, error) {
	role := req.Role
	if role == "" {
		role = models.RoleApplicant
	}
	profile := &models.Profile{
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Role:      role,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		if role == models.RoleApplicant && s.WelcomeBonus > 0 {
			return creditTx(tx, profile.ID, s.WelcomeBonus, "Welcome bonus")
		}
		return nil
	})
	if apperr.IsDuplicateKey(err) {
		return nil, fmt.Errorf("profile with email %s already exists: %w", req.Email, apperr.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return s.GetProfile(profile.ID)
}

func (s *ProfileService) GetProfile(id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
