package dtos

type TokenAssignRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	JobID       string `json:"job_id" binding:"required"`
	RoundNumber int    `json:"round_number" binding:"required,min=1"`
}

type TokenLifecycleRequest struct {
	Notes string `json:"notes"`
}
