package dtos

type ProfileCreationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"omitempty,oneof=applicant recruiter"`

	// Optional, usually a blob-store path
	AvatarURL string `json:"avatar_url"`
}

type CreditRequest struct {
	Amount int    `json:"amount" binding:"required,min=1"`
	Reason string `json:"reason" binding:"required"`
}
