package services

import (
	"context"
	"fmt"
	"log"

	"journal-management-api/models"
)

// WorkflowTx is the set of writes available inside one atomic decision
// application. Implementations must guarantee that everything done through a
// WorkflowTx commits together or not at all.
type WorkflowTx interface {
	// GetSubmissionForUpdate loads the submission and holds it against
	// concurrent decision application until the transaction ends. Returns
	// ErrNotFound when no live submission has the id.
	GetSubmissionForUpdate(ctx context.Context, submissionID int) (*models.Submission, error)

	// UpdateSubmissionState moves the submission triple from its previously
	// read value to the outcome. The write is conditional on the submission
	// still carrying the from-values; a lost race surfaces as an error rather
	// than a silent overwrite.
	UpdateSubmissionState(ctx context.Context, submissionID int, fromStage models.Stage, fromStatus models.Status, outcome TransitionOutcome) error

	// GetRound loads a round by id. Returns ErrNotFound when it does not
	// exist.
	GetRound(ctx context.Context, roundID int) (*models.ReviewRound, error)

	// ActiveRound returns the open (non-terminal) round for the submission
	// and stage, or nil when there is none.
	ActiveRound(ctx context.Context, submissionID int, stage models.Stage) (*models.ReviewRound, error)

	// CloseRound moves a round to a terminal status.
	CloseRound(ctx context.Context, roundID int, status models.RoundStatus) error

	// MarkRoundRevisionsRequested flags the round without closing it.
	MarkRoundRevisionsRequested(ctx context.Context, roundID int) error

	// OpenRound creates the next active round for the submission and stage.
	OpenRound(ctx context.Context, submissionID int, stage models.Stage) (*models.ReviewRound, error)

	// AppendDecision writes one immutable editorial decision record.
	AppendDecision(ctx context.Context, record *models.EditorialDecision) error

	// AppendActivity writes one immutable activity log line.
	AppendActivity(ctx context.Context, entry *models.ActivityLogEntry) error
}

// WorkflowStore hands out atomic transaction scopes over the submission,
// review round and log tables. The production implementation is
// GormWorkflowStore.
type WorkflowStore interface {
	Atomically(ctx context.Context, fn func(tx WorkflowTx) error) error
}

// DecisionNotifier is the best-effort hook fired after a decision commits.
// Failures are logged, never propagated; notification is an external
// collaborator, not part of the decision.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, submissionID int, decision models.Decision) error
}

// WorkflowEngine validates and applies editorial decisions. It is the only
// writer of the submission (stage, status, archived) triple.
type WorkflowEngine struct {
	store    WorkflowStore
	access   *AccessResolver
	notifier DecisionNotifier
}

func NewWorkflowEngine(store WorkflowStore, access *AccessResolver) *WorkflowEngine {
	return &WorkflowEngine{store: store, access: access}
}

// WithNotifier attaches a post-commit notifier. Optional.
func (e *WorkflowEngine) WithNotifier(n DecisionNotifier) *WorkflowEngine {
	e.notifier = n
	return e
}

// ApplyDecision is the single entry point for moving a submission through
// the workflow. Order matters: resolve the submission, authorize the actor,
// validate the transition, then commit the four writes (submission triple,
// review round, decision record, activity line) atomically.
func (e *WorkflowEngine) ApplyDecision(ctx context.Context, actorID, submissionID int, stage models.Stage, decision models.Decision, reviewRoundID *int) error {
	err := e.store.Atomically(ctx, func(tx WorkflowTx) error {
		submission, err := tx.GetSubmissionForUpdate(ctx, submissionID)
		if err != nil {
			return err
		}

		if err := e.access.RequireJournalRole(ctx, actorID, submission.JournalID, EditorRolesForStage(stage)); err != nil {
			return err
		}

		if stage != submission.CurrentStage {
			return &InvalidTransitionError{Stage: submission.CurrentStage, Status: submission.Status, Decision: decision}
		}
		outcome, err := ResolveTransition(decision, submission.CurrentStage, submission.Status)
		if err != nil {
			return err
		}

		// A caller-supplied round reference goes into the immutable audit
		// record; a dangling or foreign id there would corrupt the trail.
		if err := validateRoundReference(ctx, tx, submission.SubmissionID, reviewRoundID, submission.CurrentStage, outcome.Stage); err != nil {
			return err
		}

		roundID, err := e.applyRoundEffect(ctx, tx, submission, decision, outcome)
		if err != nil {
			return err
		}
		// The round the engine itself opened or acted on wins; the supplied
		// id only fills in when the decision touched no round.
		if roundID == nil {
			roundID = reviewRoundID
		}

		if err := tx.UpdateSubmissionState(ctx, submission.SubmissionID, submission.CurrentStage, submission.Status, outcome); err != nil {
			return err
		}

		if err := tx.AppendDecision(ctx, &models.EditorialDecision{
			SubmissionID:  submission.SubmissionID,
			Stage:         submission.CurrentStage,
			Decision:      string(decision),
			ActorID:       actorID,
			ReviewRoundID: roundID,
		}); err != nil {
			return err
		}

		description := fmt.Sprintf("decision '%s' moved submission to stage '%s' status '%s'",
			decision, outcome.Stage, outcome.Status)
		return tx.AppendActivity(ctx, &models.ActivityLogEntry{
			SubmissionID: submission.SubmissionID,
			ActorID:      actorID,
			Action:       "editorial_decision",
			Description:  &description,
		})
	})
	if err != nil {
		return err
	}

	if e.notifier != nil {
		if err := e.notifier.NotifyDecision(ctx, submissionID, decision); err != nil {
			log.Printf("Warning: decision notification failed for submission %d: %v", submissionID, err)
		}
	}
	return nil
}

// SendRecommendation records an advisory verdict from a recommend-only
// editor. It appends a decision record and an activity line but leaves the
// submission triple and its rounds untouched.
func (e *WorkflowEngine) SendRecommendation(ctx context.Context, actorID, submissionID int, stage models.Stage, recommendation models.Recommendation, reviewRoundID *int) error {
	return e.store.Atomically(ctx, func(tx WorkflowTx) error {
		submission, err := tx.GetSubmissionForUpdate(ctx, submissionID)
		if err != nil {
			return err
		}

		if err := e.access.RequireJournalRole(ctx, actorID, submission.JournalID, RecommenderRolesForStage(stage)); err != nil {
			return err
		}

		if err := validateRoundReference(ctx, tx, submission.SubmissionID, reviewRoundID, stage); err != nil {
			return err
		}

		if err := tx.AppendDecision(ctx, &models.EditorialDecision{
			SubmissionID:     submission.SubmissionID,
			Stage:            stage,
			Decision:         string(recommendation),
			IsRecommendation: true,
			ActorID:          actorID,
			ReviewRoundID:    reviewRoundID,
		}); err != nil {
			return err
		}

		description := fmt.Sprintf("recommendation '%s' recorded for stage '%s'", recommendation, stage)
		return tx.AppendActivity(ctx, &models.ActivityLogEntry{
			SubmissionID: submission.SubmissionID,
			ActorID:      actorID,
			Action:       "editorial_recommendation",
			Description:  &description,
		})
	})
}

// validateRoundReference confirms an optional caller-supplied round id names
// a round that exists, belongs to the submission and sits in one of the
// stages the decision concerns. Anything else is ErrNotFound, per the
// contract for dangling submission/round references.
func validateRoundReference(ctx context.Context, tx WorkflowTx, submissionID int, roundID *int, stages ...models.Stage) error {
	if roundID == nil {
		return nil
	}
	round, err := tx.GetRound(ctx, *roundID)
	if err != nil {
		return err
	}
	if round.SubmissionID != submissionID {
		return fmt.Errorf("review round %d does not belong to submission %d: %w", *roundID, submissionID, ErrNotFound)
	}
	for _, stage := range stages {
		if round.Stage == stage {
			return nil
		}
	}
	return fmt.Errorf("review round %d is not in a stage relevant to this decision: %w", *roundID, ErrNotFound)
}

// applyRoundEffect mutates the review rounds per the decision's rule and
// returns the id of the round the decision record should reference: the
// newly opened round when one is opened, otherwise the round acted on.
func (e *WorkflowEngine) applyRoundEffect(ctx context.Context, tx WorkflowTx, submission *models.Submission, decision models.Decision, outcome TransitionOutcome) (*int, error) {
	effect := roundEffectFor(decision)

	var touched *int
	if effect.closeStatus != "" || effect.markRevisions {
		active, err := tx.ActiveRound(ctx, submission.SubmissionID, submission.CurrentStage)
		if err != nil {
			return nil, err
		}
		if active != nil {
			if effect.markRevisions {
				if err := tx.MarkRoundRevisionsRequested(ctx, active.RoundID); err != nil {
					return nil, err
				}
			} else {
				if err := tx.CloseRound(ctx, active.RoundID, effect.closeStatus); err != nil {
					return nil, err
				}
			}
			id := active.RoundID
			touched = &id
		}
	}

	if effect.openNew {
		opened, err := tx.OpenRound(ctx, submission.SubmissionID, outcome.Stage)
		if err != nil {
			return nil, err
		}
		id := opened.RoundID
		touched = &id
	}
	return touched, nil
}
