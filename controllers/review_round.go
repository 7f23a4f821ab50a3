package controllers

import (
	"net/http"
	"strconv"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetReviewRounds lists a submission's rounds, optionally filtered by stage.
func GetReviewRounds(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	query := config.DB.Where("submission_id = ?", submissionID)

	if stageParam := c.Query("stage"); stageParam != "" {
		stage, err := models.ParseStage(stageParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stage filter"})
			return
		}
		query = query.Where("stage = ?", stage)
	}

	var rounds []models.ReviewRound
	if err := query.Order("stage ASC, round_number ASC").Find(&rounds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review rounds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rounds":  rounds,
		"total":   len(rounds),
	})
}
