package models

import (
	"fmt"
	"time"
)

// Stage is one of the four sequential editorial phases.
type Stage string

const (
	StageSubmission  Stage = "submission"
	StageReview      Stage = "review"
	StageCopyediting Stage = "copyediting"
	StageProduction  Stage = "production"
)

var stages = map[Stage]bool{
	StageSubmission:  true,
	StageReview:      true,
	StageCopyediting: true,
	StageProduction:  true,
}

// ParseStage validates a raw stage string against the closed enumeration.
func ParseStage(raw string) (Stage, error) {
	stage := Stage(raw)
	if !stages[stage] {
		return "", fmt.Errorf("unknown stage '%s'", raw)
	}
	return stage, nil
}

// Status is the submission's disposition within or across stages.
type Status string

const (
	StatusQueued        Status = "queued"
	StatusInReview      Status = "in_review"
	StatusInCopyediting Status = "in_copyediting"
	StatusInProduction  Status = "in_production"
	StatusPublished     Status = "published"
	StatusDeclined      Status = "declined"
)

var statuses = map[Status]bool{
	StatusQueued:        true,
	StatusInReview:      true,
	StatusInCopyediting: true,
	StatusInProduction:  true,
	StatusPublished:     true,
	StatusDeclined:      true,
}

// ParseStatus validates a raw status string against the closed enumeration.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !statuses[status] {
		return "", fmt.Errorf("unknown status '%s'", raw)
	}
	return status, nil
}

// IsTerminal reports whether the status ends a submission's active life.
// Terminal statuses are exactly the archived ones.
func (s Status) IsTerminal() bool {
	return s == StatusPublished || s == StatusDeclined
}

// Decision is an editorial action applied to a submission through the
// workflow engine. Recommendations are a separate type; they never move
// submission state.
type Decision string

const (
	DecisionSendToExternalReview Decision = "send_to_external_review"
	DecisionAccept               Decision = "accept"
	DecisionDecline              Decision = "decline"
	DecisionInitialDecline       Decision = "initial_decline"
	DecisionRequestRevisions     Decision = "request_revisions"
	DecisionResubmitForReview    Decision = "resubmit_for_review"
	DecisionSendToProduction     Decision = "send_to_production"
	DecisionRevertDecline        Decision = "revert_decline"
	DecisionNewRound             Decision = "new_round"
)

var decisions = map[Decision]bool{
	DecisionSendToExternalReview: true,
	DecisionAccept:               true,
	DecisionDecline:              true,
	DecisionInitialDecline:       true,
	DecisionRequestRevisions:     true,
	DecisionResubmitForReview:    true,
	DecisionSendToProduction:     true,
	DecisionRevertDecline:        true,
	DecisionNewRound:             true,
}

// ParseDecision validates a raw decision string against the closed enumeration.
func ParseDecision(raw string) (Decision, error) {
	decision := Decision(raw)
	if !decisions[decision] {
		return "", fmt.Errorf("unknown decision '%s'", raw)
	}
	return decision, nil
}

// Submission is the unit of editorial work. Its (CurrentStage, Status,
// IsArchived) triple is mutated only by the workflow engine, which keeps the
// triple inside the reachable set of the transition table and maintains
// IsArchived == true exactly when Status is terminal.
type Submission struct {
	SubmissionID     int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	SubmissionNumber string     `gorm:"column:submission_number;unique" json:"submission_number"`
	JournalID        int        `gorm:"column:journal_id" json:"journal_id"`
	AuthorID         int        `gorm:"column:author_id" json:"author_id"`
	Title            string     `gorm:"column:title" json:"title"`
	Abstract         *string    `gorm:"column:abstract" json:"abstract,omitempty"`
	CurrentStage     Stage      `gorm:"column:current_stage" json:"current_stage"`
	Status           Status     `gorm:"column:status" json:"status"`
	IsArchived       bool       `gorm:"column:is_archived" json:"is_archived"`
	SubmittedAt      *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Journal      *Journal      `gorm:"foreignKey:JournalID" json:"journal,omitempty"`
	Author       *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ReviewRounds []ReviewRound `gorm:"foreignKey:SubmissionID" json:"review_rounds,omitempty"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}
