package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"journal-management-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkflowStore is the production WorkflowStore. Each Atomically call
// runs inside one database transaction, so the four decision writes commit
// or roll back together.
type GormWorkflowStore struct {
	db *gorm.DB
}

func NewGormWorkflowStore(db *gorm.DB) *GormWorkflowStore {
	return &GormWorkflowStore{db: db}
}

func (s *GormWorkflowStore) Atomically(ctx context.Context, fn func(tx WorkflowTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormWorkflowTx{tx: tx})
	})
}

type gormWorkflowTx struct {
	tx *gorm.DB
}

// GetSubmissionForUpdate takes a row lock on the submission so concurrent
// decisions against the same submission serialize for the life of the
// transaction. Decisions against different submissions proceed independently.
func (t *gormWorkflowTx) GetSubmissionForUpdate(ctx context.Context, submissionID int) (*models.Submission, error) {
	var submission models.Submission
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d: %w", submissionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return &submission, nil
}

// UpdateSubmissionState writes the outcome triple guarded on the triple read
// under the row lock. Zero affected rows means the guard failed; the whole
// transaction aborts rather than overwrite a state someone else moved.
func (t *gormWorkflowTx) UpdateSubmissionState(ctx context.Context, submissionID int, fromStage models.Stage, fromStatus models.Status, outcome TransitionOutcome) error {
	result := t.tx.WithContext(ctx).Model(&models.Submission{}).
		Where("submission_id = ? AND current_stage = ? AND status = ?", submissionID, fromStage, fromStatus).
		Updates(map[string]interface{}{
			"current_stage": outcome.Stage,
			"status":        outcome.Status,
			"is_archived":   outcome.IsArchived,
			"update_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update submission state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("submission %d state moved concurrently: %w", submissionID, ErrInvalidTransition)
	}
	return nil
}

func (t *gormWorkflowTx) GetRound(ctx context.Context, roundID int) (*models.ReviewRound, error) {
	var round models.ReviewRound
	err := t.tx.WithContext(ctx).
		Where("round_id = ?", roundID).
		First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("review round %d: %w", roundID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load round: %w", err)
	}
	return &round, nil
}

func (t *gormWorkflowTx) ActiveRound(ctx context.Context, submissionID int, stage models.Stage) (*models.ReviewRound, error) {
	var round models.ReviewRound
	err := t.tx.WithContext(ctx).
		Where("submission_id = ? AND stage = ? AND status IN ?", submissionID, stage,
			[]models.RoundStatus{models.RoundActive, models.RoundRevisionsRequested}).
		Order("round_number DESC").
		First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	return &round, nil
}

func (t *gormWorkflowTx) CloseRound(ctx context.Context, roundID int, status models.RoundStatus) error {
	now := time.Now()
	result := t.tx.WithContext(ctx).Model(&models.ReviewRound{}).
		Where("round_id = ?", roundID).
		Updates(map[string]interface{}{
			"status":    status,
			"closed_at": now,
			"update_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to close round: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review round %d: %w", roundID, ErrNotFound)
	}
	return nil
}

func (t *gormWorkflowTx) MarkRoundRevisionsRequested(ctx context.Context, roundID int) error {
	result := t.tx.WithContext(ctx).Model(&models.ReviewRound{}).
		Where("round_id = ?", roundID).
		Updates(map[string]interface{}{
			"status":    models.RoundRevisionsRequested,
			"update_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark round for revisions: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("review round %d: %w", roundID, ErrNotFound)
	}
	return nil
}

func (t *gormWorkflowTx) OpenRound(ctx context.Context, submissionID int, stage models.Stage) (*models.ReviewRound, error) {
	var count int64
	err := t.tx.WithContext(ctx).Model(&models.ReviewRound{}).
		Where("submission_id = ? AND stage = ?", submissionID, stage).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rounds: %w", err)
	}

	now := time.Now()
	round := models.ReviewRound{
		SubmissionID: submissionID,
		Stage:        stage,
		RoundNumber:  int(count) + 1,
		Status:       models.RoundActive,
		CreateAt:     &now,
		UpdateAt:     &now,
	}
	if err := t.tx.WithContext(ctx).Create(&round).Error; err != nil {
		return nil, fmt.Errorf("failed to open round: %w", err)
	}
	return &round, nil
}

func (t *gormWorkflowTx) AppendDecision(ctx context.Context, record *models.EditorialDecision) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := t.tx.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to append decision record: %w", err)
	}
	return nil
}

func (t *gormWorkflowTx) AppendActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := t.tx.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}
	return nil
}
