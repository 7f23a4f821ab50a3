package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"journal-management-api/middleware"
	"journal-management-api/models"
	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

type DecisionRequest struct {
	Stage         string `json:"stage" binding:"required"`
	Decision      string `json:"decision" binding:"required"`
	ReviewRoundID *int   `json:"review_round_id"`
}

type RecommendationRequest struct {
	Stage          string `json:"stage" binding:"required"`
	Recommendation string `json:"recommendation" binding:"required"`
	ReviewRoundID  *int   `json:"review_round_id"`
}

// ApplyDecision records an editorial decision against a submission and moves
// it through the workflow.
func ApplyDecision(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stage, err := models.ParseStage(req.Stage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	decision, err := models.ParseDecision(req.Decision)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := workflowEngine.ApplyDecision(c.Request.Context(), actorID, submissionID, stage, decision, req.ReviewRoundID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Decision recorded",
	})
}

// SendRecommendation records an advisory recommendation. Submission state is
// untouched; a full editor must follow up with a decision.
func SendRecommendation(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	stage, err := models.ParseStage(req.Stage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recommendation, err := models.ParseRecommendation(req.Recommendation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, ok := middleware.ActorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := workflowEngine.SendRecommendation(c.Request.Context(), actorID, submissionID, stage, recommendation, req.ReviewRoundID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recommendation recorded",
	})
}

// respondWorkflowError keeps the four failure kinds externally
// distinguishable: login redirect, permission denial, missing submission and
// illegal transition each get their own status and message.
func respondWorkflowError(c *gin.Context, err error) {
	var invalid *services.InvalidTransitionError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusConflict, gin.H{
			"error":          "This action is not available in the current stage",
			"current_stage":  invalid.Stage,
			"current_status": invalid.Status,
			"decision":       invalid.Decision,
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "This action is not available in the current stage"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply decision"})
	}
}
