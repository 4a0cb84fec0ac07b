// Package apperr defines the error kinds the core services return.
// Handlers translate these into HTTP responses; services never log and
// swallow them.
package apperr

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers any missing entity (profile, job, token, ...).
	ErrNotFound = errors.New("not found")

	// ErrDuplicateToken means the user already holds a token for that
	// job and round.
	ErrDuplicateToken = errors.New("user already has a token for this round")

	// ErrInvalidTransition means a lifecycle call hit a token that is
	// not active anymore. Deliberately not idempotent: a second
	// expire/complete fails instead of silently succeeding, so operator
	// double-actions surface.
	ErrInvalidTransition = errors.New("token is not active")

	// ErrInsufficientBalance means a debit was larger than the balance.
	ErrInsufficientBalance = errors.New("insufficient jobbie balance")

	// ErrDuplicateApplication means the applicant already applied to the job.
	ErrDuplicateApplication = errors.New("already applied to this job")

	// ErrConflict means a concurrent writer won the race. The sequencer
	// and apply path retry this internally a few times before surfacing it.
	ErrConflict = errors.New("concurrent write conflict, retry")

	// ErrStoreUnavailable wraps transient infrastructure failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsDuplicateKey reports whether err is a unique-constraint violation.
// gorm translates these on postgres, but the sqlite fallback driver does
// not always, so the message is checked as well.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
