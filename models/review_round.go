package models

import (
	"fmt"
	"time"
)

// RoundStatus is the lifecycle state of a review round. A round is open while
// its status is "active" or "revisions_requested"; "completed" and
// "resubmitted" are terminal.
type RoundStatus string

const (
	RoundActive             RoundStatus = "active"
	RoundCompleted          RoundStatus = "completed"
	RoundRevisionsRequested RoundStatus = "revisions_requested"
	RoundResubmitted        RoundStatus = "resubmitted"
)

var roundStatuses = map[RoundStatus]bool{
	RoundActive:             true,
	RoundCompleted:          true,
	RoundRevisionsRequested: true,
	RoundResubmitted:        true,
}

// ParseRoundStatus validates a raw round status string.
func ParseRoundStatus(raw string) (RoundStatus, error) {
	status := RoundStatus(raw)
	if !roundStatuses[status] {
		return "", fmt.Errorf("unknown round status '%s'", raw)
	}
	return status, nil
}

// IsTerminal reports whether the round can no longer be acted on.
func (s RoundStatus) IsTerminal() bool {
	return s == RoundCompleted || s == RoundResubmitted
}

// ReviewRound is one cycle of reviewer assignment and feedback within a
// stage. At most one round per (submission, stage) may be non-terminal at a
// time; the workflow engine closes the open round before opening a new one.
type ReviewRound struct {
	RoundID      int         `gorm:"primaryKey;column:round_id" json:"round_id"`
	SubmissionID int         `gorm:"column:submission_id" json:"submission_id"`
	Stage        Stage       `gorm:"column:stage" json:"stage"`
	RoundNumber  int         `gorm:"column:round_number" json:"round_number"`
	Status       RoundStatus `gorm:"column:status" json:"status"`
	ClosedAt     *time.Time  `gorm:"column:closed_at" json:"closed_at,omitempty"`
	CreateAt     *time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time  `gorm:"column:update_at" json:"update_at"`
}

// TableName overrides
func (ReviewRound) TableName() string {
	return "review_rounds"
}
