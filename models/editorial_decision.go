package models

import (
	"fmt"
	"time"
)

// Recommendation is an advisory verdict from a recommend-only editor. It is
// logged like a decision but never moves submission state; a full editor has
// to follow up with a real decision for anything to happen.
type Recommendation string

const (
	RecommendAccept           Recommendation = "recommend_accept"
	RecommendDecline          Recommendation = "recommend_decline"
	RecommendRequestRevisions Recommendation = "recommend_revisions"
	RecommendResubmit         Recommendation = "recommend_resubmit"
)

var recommendations = map[Recommendation]bool{
	RecommendAccept:           true,
	RecommendDecline:          true,
	RecommendRequestRevisions: true,
	RecommendResubmit:         true,
}

// ParseRecommendation validates a raw recommendation string.
func ParseRecommendation(raw string) (Recommendation, error) {
	rec := Recommendation(raw)
	if !recommendations[rec] {
		return "", fmt.Errorf("unknown recommendation '%s'", raw)
	}
	return rec, nil
}

// EditorialDecision is one append-only audit record per applied decision or
// recommendation. Rows are never updated or deleted; the submission's stage
// history can be reconstructed from this table alone.
type EditorialDecision struct {
	DecisionID       int       `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	SubmissionID     int       `gorm:"column:submission_id" json:"submission_id"`
	Stage            Stage     `gorm:"column:stage" json:"stage"`
	Decision         string    `gorm:"column:decision" json:"decision"`
	IsRecommendation bool      `gorm:"column:is_recommendation" json:"is_recommendation"`
	ActorID          int       `gorm:"column:actor_id" json:"actor_id"`
	ReviewRoundID    *int      `gorm:"column:review_round_id" json:"review_round_id,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName overrides
func (EditorialDecision) TableName() string {
	return "editorial_decisions"
}
