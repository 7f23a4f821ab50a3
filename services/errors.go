package services

import (
	"errors"
	"fmt"

	"journal-management-api/models"
)

// The four failure kinds the core can report. Callers map each one to a
// distinct HTTP response; conflating any two of them is a defect.
var (
	// ErrUnauthorized means the actor could not be resolved to an
	// authenticated account.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the actor is authenticated but lacks the required
	// role for the requested scope.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the referenced submission or review round does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition means the requested decision is not legal from the
	// submission's current (stage, status). Use errors.As to recover the
	// attempted transition for the caller-facing message.
	ErrInvalidTransition = errors.New("invalid transition")
)

// InvalidTransitionError carries enough context to tell the caller which
// decision was attempted from which state. It matches ErrInvalidTransition
// under errors.Is.
type InvalidTransitionError struct {
	Stage    models.Stage
	Status   models.Status
	Decision models.Decision
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("decision '%s' is not legal from stage '%s' status '%s'",
		e.Decision, e.Stage, e.Status)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
