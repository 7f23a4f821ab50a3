package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetJournals lists enabled journals.
func GetJournals(c *gin.Context) {
	var journals []models.Journal
	if err := config.DB.Where("delete_at IS NULL AND is_enabled = ?", true).
		Order("title ASC").
		Find(&journals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"journals": journals,
		"total":    len(journals),
	})
}

// GetJournalSubmissions lists every submission in a journal for its editors.
// The route gate already checked the journal-scoped editorial roles.
func GetJournalSubmissions(c *gin.Context) {
	journalID, err := strconv.Atoi(c.Param("journal_id"))
	if err != nil || journalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID"})
		return
	}

	var submissions []models.Submission
	if err := config.DB.Preload("Author").
		Where("journal_id = ? AND delete_at IS NULL", journalID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetJournal returns a single journal by id.
func GetJournal(c *gin.Context) {
	journalID, err := strconv.Atoi(c.Param("journal_id"))
	if err != nil || journalID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID"})
		return
	}

	var journal models.Journal
	if err := config.DB.Where("journal_id = ? AND delete_at IS NULL", journalID).
		First(&journal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch journal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"journal": journal,
	})
}
