package services

import (
	"context"
	"errors"
	"fmt"

	"journal-management-api/models"

	"gorm.io/gorm"
)

// GormRoleGrantStore is the production RoleGrantProvider, reading the users
// and role_grants tables.
type GormRoleGrantStore struct {
	db *gorm.DB
}

func NewGormRoleGrantStore(db *gorm.DB) *GormRoleGrantStore {
	return &GormRoleGrantStore{db: db}
}

// ResolveActor confirms the user exists, is not soft-deleted and is not
// disabled. Anything else is an authentication failure, not an authorization
// failure.
func (s *GormRoleGrantStore) ResolveActor(ctx context.Context, userID int) error {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", userID, ErrUnauthorized)
		}
		return fmt.Errorf("failed to resolve actor: %w", err)
	}
	if user.IsDisabled {
		return fmt.Errorf("user %d is disabled: %w", userID, ErrUnauthorized)
	}
	return nil
}

// ListRoleGrants returns all live grants for the user.
func (s *GormRoleGrantStore) ListRoleGrants(ctx context.Context, userID int) ([]models.RoleGrant, error) {
	var grants []models.RoleGrant
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load role grants: %w", err)
	}
	return grants, nil
}
