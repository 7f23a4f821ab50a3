package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"journal-management-api/models"
)

func TestGetRoundMissingRowIsNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `review_rounds` WHERE round_id = \\?"),
			args:    []driver.Value{int64(9999)},
			columns: []string{"round_id", "submission_id", "stage", "round_number", "status"},
			rows:    [][]driver.Value{},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := (&gormWorkflowTx{tx: db}).GetRound(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing round: got %v want ErrNotFound", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestCloseRoundMissingRowIsNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			pattern:      regexp.MustCompile("UPDATE `review_rounds` SET .* WHERE round_id = \\?"),
			rowsAffected: 0,
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	err := (&gormWorkflowTx{tx: db}).CloseRound(context.Background(), 9999, models.RoundCompleted)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("close of missing round: got %v want ErrNotFound", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestMarkRoundRevisionsRequestedMissingRowIsNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			pattern:      regexp.MustCompile("UPDATE `review_rounds` SET .* WHERE round_id = \\?"),
			rowsAffected: 0,
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	err := (&gormWorkflowTx{tx: db}).MarkRoundRevisionsRequested(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("mark of missing round: got %v want ErrNotFound", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
