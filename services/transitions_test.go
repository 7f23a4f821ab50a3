package services

import (
	"errors"
	"testing"

	"journal-management-api/models"
)

var allStages = []models.Stage{
	models.StageSubmission,
	models.StageReview,
	models.StageCopyediting,
	models.StageProduction,
}

var allStatuses = []models.Status{
	models.StatusQueued,
	models.StatusInReview,
	models.StatusInCopyediting,
	models.StatusInProduction,
	models.StatusPublished,
	models.StatusDeclined,
}

var allDecisions = []models.Decision{
	models.DecisionSendToExternalReview,
	models.DecisionAccept,
	models.DecisionDecline,
	models.DecisionInitialDecline,
	models.DecisionRequestRevisions,
	models.DecisionResubmitForReview,
	models.DecisionSendToProduction,
	models.DecisionRevertDecline,
	models.DecisionNewRound,
}

type legalCase struct {
	decision models.Decision
	stage    models.Stage
	status   models.Status
	want     TransitionOutcome
}

func legalCases() []legalCase {
	cases := []legalCase{
		{models.DecisionSendToExternalReview, models.StageSubmission, models.StatusQueued,
			TransitionOutcome{models.StageReview, models.StatusInReview, false}},
		{models.DecisionAccept, models.StageReview, models.StatusInReview,
			TransitionOutcome{models.StageCopyediting, models.StatusInCopyediting, false}},
		{models.DecisionRequestRevisions, models.StageReview, models.StatusInReview,
			TransitionOutcome{models.StageReview, models.StatusInReview, false}},
		{models.DecisionResubmitForReview, models.StageReview, models.StatusInReview,
			TransitionOutcome{models.StageReview, models.StatusInReview, false}},
		{models.DecisionSendToProduction, models.StageCopyediting, models.StatusInCopyediting,
			TransitionOutcome{models.StageProduction, models.StatusInProduction, false}},
	}

	// Decline and InitialDecline: submission or review stage, any non-terminal
	// status, always landing on (same stage, declined, archived).
	for _, decision := range []models.Decision{models.DecisionDecline, models.DecisionInitialDecline} {
		for _, stage := range []models.Stage{models.StageSubmission, models.StageReview} {
			for _, status := range allStatuses {
				if status.IsTerminal() {
					continue
				}
				cases = append(cases, legalCase{decision, stage, status,
					TransitionOutcome{stage, models.StatusDeclined, true}})
			}
		}
	}

	// RevertDecline: any stage, declined only.
	for _, stage := range allStages {
		cases = append(cases, legalCase{models.DecisionRevertDecline, stage, models.StatusDeclined,
			TransitionOutcome{stage, models.StatusInReview, false}})
	}

	// NewRound: any stage, any non-terminal status, state unchanged.
	for _, stage := range allStages {
		for _, status := range allStatuses {
			if status.IsTerminal() {
				continue
			}
			cases = append(cases, legalCase{models.DecisionNewRound, stage, status,
				TransitionOutcome{stage, status, false}})
		}
	}
	return cases
}

func TestResolveTransitionLegalRows(t *testing.T) {
	for _, tc := range legalCases() {
		got, err := ResolveTransition(tc.decision, tc.stage, tc.status)
		if err != nil {
			t.Errorf("%s from (%s, %s): unexpected error %v", tc.decision, tc.stage, tc.status, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s from (%s, %s): got %+v want %+v", tc.decision, tc.stage, tc.status, got, tc.want)
		}
	}
}

func TestResolveTransitionRejectsEverythingElse(t *testing.T) {
	legal := make(map[[3]string]bool)
	for _, tc := range legalCases() {
		legal[[3]string{string(tc.decision), string(tc.stage), string(tc.status)}] = true
	}

	for _, decision := range allDecisions {
		for _, stage := range allStages {
			for _, status := range allStatuses {
				if legal[[3]string{string(decision), string(stage), string(status)}] {
					continue
				}
				_, err := ResolveTransition(decision, stage, status)
				if err == nil {
					t.Errorf("%s from (%s, %s): expected invalid transition, got success", decision, stage, status)
					continue
				}
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("%s from (%s, %s): error %v does not match ErrInvalidTransition", decision, stage, status, err)
				}
				var detail *InvalidTransitionError
				if !errors.As(err, &detail) {
					t.Errorf("%s from (%s, %s): error carries no transition detail", decision, stage, status)
				} else if detail.Stage != stage || detail.Status != status || detail.Decision != decision {
					t.Errorf("%s from (%s, %s): detail %+v does not describe the attempt", decision, stage, status, detail)
				}
			}
		}
	}
}

func TestArchivedOutcomesMatchTerminalStatuses(t *testing.T) {
	for _, tc := range legalCases() {
		if tc.want.IsArchived != tc.want.Status.IsTerminal() {
			t.Fatalf("case %+v breaks the archive invariant", tc)
		}
	}
}

func TestEditorRolesForStage(t *testing.T) {
	for _, stage := range allStages {
		roles := EditorRolesForStage(stage)
		hasGuest := false
		for _, role := range roles {
			if role == models.RoleSectionEditor {
				t.Fatalf("stage %s: section_editor must be recommend-only", stage)
			}
			if role == models.RoleGuestEditor {
				hasGuest = true
			}
		}
		if hasGuest != (stage == models.StageReview) {
			t.Fatalf("stage %s: guest_editor presence = %v", stage, hasGuest)
		}
	}

	for _, stage := range allStages {
		found := false
		for _, role := range RecommenderRolesForStage(stage) {
			if role == models.RoleSectionEditor {
				found = true
			}
		}
		if !found {
			t.Fatalf("stage %s: section_editor missing from recommender roles", stage)
		}
	}
}
