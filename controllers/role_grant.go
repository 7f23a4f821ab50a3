package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"journal-management-api/config"
	"journal-management-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateRoleGrantRequest struct {
	UserID    int    `json:"user_id" binding:"required"`
	RolePath  string `json:"role_path" binding:"required"`
	ScopeType string `json:"scope_type" binding:"required"`
	JournalID *int   `json:"journal_id"`
}

// CreateRoleGrant adds a role grant. Site-admin only; the access resolver
// itself never writes grants.
func CreateRoleGrant(c *gin.Context) {
	var req CreateRoleGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	role, err := models.ParseRolePath(req.RolePath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := models.ScopeType(req.ScopeType)
	switch scope {
	case models.ScopeSite:
		if req.JournalID != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Site-scoped grants must not carry a journal ID"})
			return
		}
	case models.ScopeJournal:
		if req.JournalID == nil || *req.JournalID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Journal-scoped grants require a journal ID"})
			return
		}
		var journal models.Journal
		if err := config.DB.Where("journal_id = ? AND delete_at IS NULL", *req.JournalID).
			First(&journal).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Journal not found"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scope must be 'site' or 'journal'"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	// Refuse duplicates of a live identical grant.
	dupQuery := config.DB.Where("user_id = ? AND role_path = ? AND scope_type = ? AND delete_at IS NULL",
		req.UserID, role, scope)
	if scope == models.ScopeJournal {
		dupQuery = dupQuery.Where("journal_id = ?", *req.JournalID)
	}
	var existing models.RoleGrant
	if err := dupQuery.First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Grant already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing grants"})
		return
	}

	now := time.Now()
	grant := models.RoleGrant{
		UserID:    req.UserID,
		RolePath:  role,
		ScopeType: scope,
		JournalID: req.JournalID,
		CreateAt:  &now,
	}
	if err := config.DB.Create(&grant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create grant"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"grant":   grant,
	})
}

// RevokeRoleGrant soft-deletes a grant by id.
func RevokeRoleGrant(c *gin.Context) {
	grantID, err := strconv.Atoi(c.Param("grant_id"))
	if err != nil || grantID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grant ID"})
		return
	}

	result := config.DB.Model(&models.RoleGrant{}).
		Where("grant_id = ? AND delete_at IS NULL", grantID).
		Update("delete_at", time.Now())
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke grant"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Grant revoked",
	})
}

// GetUserRoleGrants lists a user's live grants.
func GetUserRoleGrants(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var grants []models.RoleGrant
	if err := config.DB.Preload("Journal").
		Where("user_id = ? AND delete_at IS NULL", userID).
		Find(&grants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch grants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"grants":  grants,
		"total":   len(grants),
	})
}
