package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{
		JobService: j,
	}
}

// CreateJob is the POST /jobs endpoint
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, err := h.JobService.CreateJob(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// ListJobs is the GET /jobs endpoint, active postings only
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob is the GET /jobs/:id endpoint
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
