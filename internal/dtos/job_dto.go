package dtos

type JobCreationRequest struct {
	RecruiterID string `json:"recruiter_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Description string `json:"description" binding:"required"`

	// Optional Fields
	Location     string   `json:"location"`
	Type         string   `json:"type" binding:"omitempty,oneof=full-time part-time internship remote"`
	Tags         []string `json:"tags"`
	Requirements []string `json:"requirements"`
	SalaryMin    *int     `json:"salary_min"`
	SalaryMax    *int     `json:"salary_max"`
}
