package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobbie-labs/jobbie-backend/internal/dtos"
	"github.com/jobbie-labs/jobbie-backend/internal/services"
)

type TokenHandler struct {
	TokenService *services.TokenService
	QueueService *services.QueueService
}

func NewTokenHandler(t *services.TokenService, q *services.QueueService) *TokenHandler {
	return &TokenHandler{
		TokenService: t,
		QueueService: q,
	}
}

// AssignToken is the POST /tokens endpoint
func (h *TokenHandler) AssignToken(c *gin.Context) {
	var req dtos.TokenAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	token, err := h.TokenService.Assign(req.UserID, req.JobID, req.RoundNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    token,
		"message": fmt.Sprintf("Token #%d assigned for Round %d", token.TokenNumber, token.RoundNumber),
	})
}

// ExpireToken is the POST /tokens/:id/expire endpoint
func (h *TokenHandler) ExpireToken(c *gin.Context) {
	var req dtos.TokenLifecycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	token, err := h.TokenService.Expire(c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    token,
		"message": "Token expired successfully",
	})
}

// CompleteToken is the POST /tokens/:id/complete endpoint
func (h *TokenHandler) CompleteToken(c *gin.Context) {
	var req dtos.TokenLifecycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	token, err := h.TokenService.Complete(c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    token,
		"message": "Token marked as completed",
	})
}

// ListRoundTokens is the GET /jobs/:id/rounds/:round/tokens endpoint,
// the recruiter's queue for one round
func (h *TokenHandler) ListRoundTokens(c *gin.Context) {
	round, err := strconv.Atoi(c.Param("round"))
	if err != nil || round < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round number"})
		return
	}
	entries, err := h.QueueService.ListRound(c.Param("id"), round)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListUserTokens is the GET /profiles/:id/tokens endpoint, optionally
// narrowed with ?job_id=
func (h *TokenHandler) ListUserTokens(c *gin.Context) {
	tokens, err := h.QueueService.SelfStatus(c.Param("id"), c.Query("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}
