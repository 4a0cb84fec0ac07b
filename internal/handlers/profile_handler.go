package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/services"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
	LedgerService  *services.LedgerService
}

func NewProfileHandler(p *services.ProfileService, l *services.LedgerService) *ProfileHandler {
	return &ProfileHandler{
		ProfileService: p,
		LedgerService:  l,
	}
}

// CreateProfile is the POST /profiles endpoint. New applicants get the
// welcome bonus credited in the same transaction.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dtos.ProfileCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	profile, err := h.ProfileService.CreateProfile(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetProfile is the GET /profiles/:id endpoint
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.ProfileService.GetProfile(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Credit is the POST /profiles/:id/credit endpoint (earn jobbies)
func (h *ProfileHandler) Credit(c *gin.Context) {
	var req dtos.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	profile, err := h.LedgerService.Credit(c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// LedgerHistory is the GET /profiles/:id/ledger endpoint, newest first
func (h *ProfileHandler) LedgerHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	entries, err := h.LedgerService.History(c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
