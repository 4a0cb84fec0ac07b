package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/models"
	"github.com/jobbie-labs/jobbie-backend/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	QueueService       *services.QueueService
}

func NewApplicationHandler(a *services.ApplicationService, q *services.QueueService) *ApplicationHandler {
	return &ApplicationHandler{
		ApplicationService: a,
		QueueService:       q,
	}
}

// Apply is the POST /jobs/:id/apply endpoint
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.ApplicationService.Apply(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"data":           app,
		"queue_position": app.QueuePosition,
	})
}

// ListJobApplications is the GET /jobs/:id/applications endpoint,
// the recruiter's application queue in position order
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	apps, err := h.ApplicationService.ListForJob(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListApplicantApplications is the GET /profiles/:id/applications
// endpoint. Each entry carries the presentational progress estimate
// next to the authoritative queue position.
func (h *ApplicationHandler) ListApplicantApplications(c *gin.Context) {
	apps, err := h.ApplicationService.ListForApplicant(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	type applicationView struct {
		Application      models.Application `json:"application"`
		QueueProgressPct float64            `json:"queue_progress_pct"`
	}
	views := make([]applicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, applicationView{
			Application:      app,
			QueueProgressPct: h.QueueService.ProgressEstimate(app.QueuePosition),
		})
	}
	c.JSON(http.StatusOK, views)
}
