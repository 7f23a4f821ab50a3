package services

import (
	"journal-management-api/models"
)

// TransitionOutcome is the submission triple a legal decision produces.
type TransitionOutcome struct {
	Stage      models.Stage
	Status     models.Status
	IsArchived bool
}

// roundEffect describes what a decision does to the submission's review
// rounds. CloseStatus empty means the open round (if any) stays untouched.
type roundEffect struct {
	closeStatus   models.RoundStatus // terminal status for the open round
	openNew       bool               // open a fresh active round in the outcome stage
	markRevisions bool               // flip the open round to revisions_requested
}

// transitionRule pairs a precondition over the current (stage, status) with
// the resulting triple and round side effects.
type transitionRule struct {
	allowed func(models.Stage, models.Status) (TransitionOutcome, bool)
	rounds  roundEffect
}

// transitionTable is the single source of truth for decision legality. Every
// decision not present for a given (stage, status) is an invalid transition.
var transitionTable = map[models.Decision]transitionRule{
	models.DecisionSendToExternalReview: {
		allowed: func(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
			if stage != models.StageSubmission || status != models.StatusQueued {
				return TransitionOutcome{}, false
			}
			return TransitionOutcome{Stage: models.StageReview, Status: models.StatusInReview}, true
		},
		rounds: roundEffect{closeStatus: models.RoundCompleted, openNew: true},
	},
	models.DecisionAccept: {
		allowed: func(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
			if stage != models.StageReview || status != models.StatusInReview {
				return TransitionOutcome{}, false
			}
			return TransitionOutcome{Stage: models.StageCopyediting, Status: models.StatusInCopyediting}, true
		},
		rounds: roundEffect{closeStatus: models.RoundCompleted},
	},
	models.DecisionDecline: {
		allowed: declineAllowed,
		rounds:  roundEffect{closeStatus: models.RoundCompleted},
	},
	models.DecisionInitialDecline: {
		allowed: declineAllowed,
		rounds:  roundEffect{closeStatus: models.RoundCompleted},
	},
	models.DecisionRequestRevisions: {
		allowed: func(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
			if stage != models.StageReview || status != models.StatusInReview {
				return TransitionOutcome{}, false
			}
			return TransitionOutcome{Stage: stage, Status: models.StatusInReview}, true
		},
		rounds: roundEffect{markRevisions: true},
	},
	models.DecisionResubmitForReview: {
		allowed: func(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
			if stage != models.StageReview || status != models.StatusInReview {
				return TransitionOutcome{}, false
			}
			return TransitionOutcome{Stage: models.StageReview, Status: models.StatusInReview}, true
		},
		rounds: roundEffect{closeStatus: models.RoundResubmitted, openNew: true},
	},
	models.DecisionSendToProduction: {
		allowed: func(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
			if stage != models.StageCopyediting || status != models.StatusInCopyediting {
				return TransitionOutcome{}, false
			}
			return TransitionOutcome{Stage: models.StageProduction, Status: models.StatusInProduction}, true
		},
		rounds: roundEffect{closeStatus: models.RoundCompleted},
	},
	models.DecisionRevertDecline: {
		allowed: func(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
			if status != models.StatusDeclined {
				return TransitionOutcome{}, false
			}
			return TransitionOutcome{Stage: stage, Status: models.StatusInReview}, true
		},
		// The round that was open at decline time was closed then; reopening
		// starts a fresh round in the current stage.
		rounds: roundEffect{openNew: true},
	},
	models.DecisionNewRound: {
		allowed: func(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
			if status.IsTerminal() {
				return TransitionOutcome{}, false
			}
			return TransitionOutcome{Stage: stage, Status: status}, true
		},
		rounds: roundEffect{closeStatus: models.RoundCompleted, openNew: true},
	},
}

func declineAllowed(stage models.Stage, status models.Status) (TransitionOutcome, bool) {
	if stage != models.StageSubmission && stage != models.StageReview {
		return TransitionOutcome{}, false
	}
	if status.IsTerminal() {
		return TransitionOutcome{}, false
	}
	return TransitionOutcome{Stage: stage, Status: models.StatusDeclined, IsArchived: true}, true
}

// ResolveTransition returns the outcome triple for applying the decision to
// the current (stage, status), or an InvalidTransitionError when the
// transition table has no matching row. It never coerces an illegal request
// to a nearby legal one.
func ResolveTransition(decision models.Decision, stage models.Stage, status models.Status) (TransitionOutcome, error) {
	rule, ok := transitionTable[decision]
	if !ok {
		return TransitionOutcome{}, &InvalidTransitionError{Stage: stage, Status: status, Decision: decision}
	}
	outcome, ok := rule.allowed(stage, status)
	if !ok {
		return TransitionOutcome{}, &InvalidTransitionError{Stage: stage, Status: status, Decision: decision}
	}
	return outcome, nil
}

func roundEffectFor(decision models.Decision) roundEffect {
	return transitionTable[decision].rounds
}

// EditorRolesForStage returns the journal roles allowed to apply a full
// editorial decision in the given stage. Managers and editors decide in every
// stage; guest editors only inside review.
func EditorRolesForStage(stage models.Stage) []models.RolePath {
	roles := []models.RolePath{models.RoleManager, models.RoleEditor}
	if stage == models.StageReview {
		roles = append(roles, models.RoleGuestEditor)
	}
	return roles
}

// RecommenderRolesForStage returns the journal roles allowed to record an
// advisory recommendation in the given stage. Section editors are
// recommend-only: they appear here but never in EditorRolesForStage.
func RecommenderRolesForStage(stage models.Stage) []models.RolePath {
	return append(EditorRolesForStage(stage), models.RoleSectionEditor)
}
