package controllers

import (
	"net/http"
	"strconv"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetEditorialHistory returns the append-only decision records for a
// submission, oldest first. This is the audit trail the stage history can be
// rebuilt from.
func GetEditorialHistory(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var records []models.EditorialDecision
	if err := config.DB.Preload("Actor").
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decision history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"decisions": records,
		"total":     len(records),
	})
}

// GetActivityLog returns the human-readable activity lines for a submission.
func GetActivityLog(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var entries []models.ActivityLogEntry
	if err := config.DB.Preload("Actor").
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"entries": entries,
		"total":   len(entries),
	})
}
