package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role of a profile. Recruiters post jobs and run rounds,
// applicants spend jobbies to join queues.
const (
	RoleApplicant = "applicant"
	RoleRecruiter = "recruiter"
)

// Application statuses, set by recruiters during review.
const (
	ApplicationPending   = "pending"
	ApplicationReviewed  = "reviewed"
	ApplicationInterview = "interview"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
)

// Round token lifecycle. A token starts active and ends up
// completed or expired exactly once; there is no way back.
const (
	TokenActive    = "active"
	TokenCompleted = "completed"
	TokenExpired   = "expired"
)

// Ledger entry directions.
const (
	LedgerEarn  = "earn"
	LedgerSpend = "spend"
)

type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `gorm:"not null;default:'applicant'" json:"role"`

	// Spendable jobbie balance. Kept redundantly here; every change
	// writes a matching LedgerEntry in the same transaction.
	TokenBalance int `gorm:"not null;default:0" json:"token_balance"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Job struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RecruiterID string  `gorm:"index;not null" json:"recruiter_id"`
	Recruiter   Profile `gorm:"foreignKey:RecruiterID" json:"-"`

	Title        string   `gorm:"not null" json:"title"`
	Company      string   `gorm:"not null" json:"company"`
	Description  string   `gorm:"type:text" json:"description"`
	Location     string   `json:"location"`
	Type         string   `json:"type"` // full-time | part-time | internship | remote
	Tags         []string `gorm:"serializer:json" json:"tags"`
	Requirements []string `gorm:"serializer:json" json:"requirements"`
	SalaryMin    *int     `json:"salary_min"`
	SalaryMax    *int     `json:"salary_max"`
	IsActive     bool     `gorm:"default:true" json:"is_active"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// Application is one applicant joining one job's queue. At most one
// per (job, applicant); QueuePosition is assigned at creation and
// never renumbered.
type Application struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID       string  `gorm:"uniqueIndex:idx_app_job_applicant;uniqueIndex:idx_app_job_position;not null" json:"job_id"`
	Job         Job     `json:"job,omitempty"`
	ApplicantID string  `gorm:"uniqueIndex:idx_app_job_applicant;not null" json:"applicant_id"`
	Applicant   Profile `gorm:"foreignKey:ApplicantID" json:"-"`

	ResumeURL     string `gorm:"not null" json:"resume_url"`
	VideoIntroURL string `json:"video_intro_url"`
	CoverLetter   string `gorm:"type:text" json:"cover_letter"`
	Status        string `gorm:"not null;default:'pending'" json:"status"`
	QueuePosition int    `gorm:"uniqueIndex:idx_app_job_position;not null" json:"queue_position"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// RoundToken is the per-round admission ticket. TokenNumber is dense
// and strictly increasing within a (job, round) partition; both unique
// indexes below back the sequencer's correctness.
type RoundToken struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string  `gorm:"uniqueIndex:idx_token_user_job_round;not null" json:"user_id"`
	User   Profile `gorm:"foreignKey:UserID" json:"-"`
	JobID  string  `gorm:"uniqueIndex:idx_token_user_job_round;uniqueIndex:idx_token_job_round_number;not null" json:"job_id"`
	Job    Job     `json:"job,omitempty"`

	RoundNumber int `gorm:"uniqueIndex:idx_token_user_job_round;uniqueIndex:idx_token_job_round_number;not null" json:"round_number"`
	TokenNumber int `gorm:"uniqueIndex:idx_token_job_round_number;not null" json:"token_number"`

	Status     string     `gorm:"not null;default:'active'" json:"status"`
	AssignedAt time.Time  `gorm:"not null" json:"assigned_at"`
	ExpiredAt  *time.Time `json:"expired_at"`
	Notes      string     `gorm:"type:text" json:"notes"`
}

func (t *RoundToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// LedgerEntry is append-only; rows are never updated or deleted, so a
// profile's balance is always the signed sum of its entries.
type LedgerEntry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID string  `gorm:"index;not null" json:"user_id"`
	User   Profile `gorm:"foreignKey:UserID" json:"-"`

	Type   string `gorm:"not null" json:"type"` // earn | spend
	Amount int    `gorm:"not null" json:"amount"`
	Reason string `gorm:"not null" json:"reason"`
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
