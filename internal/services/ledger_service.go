package services

import (
	"errors"
	"fmt"

	"github.com/jobbie-labs/jobbie-backend/internal/apperr"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"gorm.io/gorm"
)

// LedgerService owns every jobbie balance change. All mutations go
// through Credit/Debit so the balance on the profile row and the
// append-only ledger never drift apart.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// Credit adds amount to the user's balance and appends an earn entry.
func (s *LedgerService) Credit(userID string, amount int, reason string) (*models.Profile, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return creditTx(tx, userID, amount, reason)
	})
	if err != nil {
		return nil, err
	}
	return s.getProfile(userID)
}

// Debit removes amount from the user's balance and appends a spend
// entry. Fails with ErrInsufficientBalance when the balance is too low,
// leaving no partial state.
func (s *LedgerService) Debit(userID string, amount int, reason string) (*models.Profile, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return debitTx(tx, userID, amount, reason)
	})
	if err != nil {
		return nil, err
	}
	return s.getProfile(userID)
}

// History returns the user's ledger entries, newest first. limit is
// capped at 100; offset allows paging through the rest.
func (s *LedgerService) History(userID string, limit, offset int) ([]models.LedgerEntry, error) {
	if _, err := s.getProfile(userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var entries []models.LedgerEntry
	err := s.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *LedgerService) getProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("profile %s: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// creditTx applies an earn inside an existing transaction. Used by
// Credit and by the welcome bonus on profile creation.
func creditTx(tx *gorm.DB, userID string, amount int, reason string) error {
	res := tx.Model(&models.Profile{}).
		Where("id = ?", userID).
		Update("token_balance", gorm.Expr("token_balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", userID, apperr.ErrNotFound)
	}
	return tx.Create(&models.LedgerEntry{
		UserID: userID,
		Type:   models.LedgerEarn,
		Amount: amount,
		Reason: reason,
	}).Error
}

// debitTx applies a spend inside an existing transaction. The balance
// guard lives in the WHERE clause, so two racing debits can never drive
// the balance negative.
func debitTx(tx *gorm.DB, userID string, amount int, reason string) error {
	res := tx.Model(&models.Profile{}).
		Where("id = ? AND token_balance >= ?", userID, amount).
		Update("token_balance", gorm.Expr("token_balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the profile is missing or the balance was too low
		var profile models.Profile
		err := tx.First(&profile, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("profile %s: %w", userID, apperr.ErrNotFound)
		}
		if err != nil {
			return err
		}
		return apperr.ErrInsufficientBalance
	}
	return tx.Create(&models.LedgerEntry{
		UserID: userID,
		Type:   models.LedgerSpend,
		Amount: amount,
		Reason: reason,
	}).Error
}
