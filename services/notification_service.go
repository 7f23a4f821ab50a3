package services

import (
	"context"
	"fmt"

	"journal-management-api/config"
	"journal-management-api/models"

	"gorm.io/gorm"
)

// MailNotifier emails the submitting author after a decision commits. It is
// best effort: the workflow engine logs failures and moves on.
type MailNotifier struct {
	db *gorm.DB
}

func NewMailNotifier(db *gorm.DB) *MailNotifier {
	return &MailNotifier{db: db}
}

var decisionSubjects = map[models.Decision]string{
	models.DecisionSendToExternalReview: "Your submission has been sent to review",
	models.DecisionAccept:               "Your submission has been accepted",
	models.DecisionDecline:              "Your submission has been declined",
	models.DecisionInitialDecline:       "Your submission has been declined",
	models.DecisionRequestRevisions:     "Revisions requested for your submission",
	models.DecisionResubmitForReview:    "Your submission has entered a new review round",
	models.DecisionSendToProduction:     "Your submission has moved to production",
	models.DecisionRevertDecline:        "Your submission has been reinstated",
}

// NotifyDecision looks up the author behind the submission and sends a short
// status email. Decisions with no subject line (internal ones like NewRound)
// are skipped.
func (n *MailNotifier) NotifyDecision(ctx context.Context, submissionID int, decision models.Decision) error {
	subject, ok := decisionSubjects[decision]
	if !ok {
		return nil
	}

	// The email must still go out if the request context is already done.
	ctx = persistentContext(ctx)

	var submission models.Submission
	err := n.db.WithContext(ctx).Preload("Author").Preload("Journal").
		Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error
	if err != nil {
		return fmt.Errorf("failed to load submission for notification: %w", err)
	}
	if submission.Author == nil || submission.Author.Email == "" {
		return nil
	}

	journalTitle := ""
	if submission.Journal != nil {
		journalTitle = submission.Journal.Title
	}
	html := fmt.Sprintf(
		"<p>Dear %s %s,</p><p>An editorial decision has been recorded for your submission <strong>%s</strong> (%s)%s.</p><p>Current status: %s.</p>",
		submission.Author.UserFname, submission.Author.UserLname,
		submission.Title, submission.SubmissionNumber,
		journalSuffix(journalTitle), submission.Status,
	)
	return config.SendMail([]string{submission.Author.Email}, subject, html)
}

func journalSuffix(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf(" in <em>%s</em>", title)
}
