package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSubmissionRequest struct {
	JournalID int    `json:"journal_id" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Abstract  string `json:"abstract"`
}

// CreateSubmission registers a new submission in its journal. New submissions
// always enter at (submission, queued, unarchived); every later move goes
// through the workflow engine.
func CreateSubmission(c *gin.Context) {
	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	authorID := userIDValue.(int)

	var journal models.Journal
	if err := config.DB.Where("journal_id = ? AND delete_at IS NULL AND is_enabled = ?", req.JournalID, true).
		First(&journal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load journal"})
		return
	}

	now := time.Now()
	submission := models.Submission{
		SubmissionNumber: "SUB-" + uuid.NewString(),
		JournalID:        journal.JournalID,
		AuthorID:         authorID,
		Title:            req.Title,
		CurrentStage:     models.StageSubmission,
		Status:           models.StatusQueued,
		IsArchived:       false,
		SubmittedAt:      &now,
		CreateAt:         &now,
		UpdateAt:         &now,
	}
	if req.Abstract != "" {
		submission.Abstract = &req.Abstract
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmission returns one submission with its rounds.
func GetSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.Preload("Author").Preload("Journal").
		Preload("ReviewRounds", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_rounds.round_number ASC")
		}).
		Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmissions lists submissions, filterable by journal, stage, status and
// archive flag.
func GetSubmissions(c *gin.Context) {
	query := config.DB.Preload("Author").Preload("Journal").
		Where("delete_at IS NULL")

	if journalParam := c.Query("journal_id"); journalParam != "" {
		journalID, err := strconv.Atoi(journalParam)
		if err != nil || journalID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID"})
			return
		}
		query = query.Where("journal_id = ?", journalID)
	}

	if stageParam := c.Query("stage"); stageParam != "" {
		stage, err := models.ParseStage(stageParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stage filter"})
			return
		}
		query = query.Where("current_stage = ?", stage)
	}

	if statusParam := c.Query("status"); statusParam != "" {
		status, err := models.ParseStatus(statusParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	if archivedParam := c.Query("archived"); archivedParam != "" {
		query = query.Where("is_archived = ?", archivedParam == "true")
	}

	var submissions []models.Submission
	if err := query.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetMySubmissions lists the authenticated author's own submissions.
func GetMySubmissions(c *gin.Context) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var submissions []models.Submission
	if err := config.DB.Preload("Journal").
		Where("author_id = ? AND delete_at IS NULL", userIDValue).
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
