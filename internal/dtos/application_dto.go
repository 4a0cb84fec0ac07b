package dtos

type ApplicationRequest struct {
	ApplicantID string `json:"applicant_id" binding:"required"`
	ResumeURL   string `json:"resume_url" binding:"required"`

	// Optional Fields
	VideoIntroURL string `json:"video_intro_url"`
	CoverLetter   string `json:"cover_letter"`
}
