package models

import (
	"errors"
	"testing"
)

func TestSortEvaluationsIdempotent(t *testing.T) {
	evals := []Evaluation{
		{ID: "a", Timestamp: 100},
		{ID: "b", Timestamp: 300},
		{ID: "c", Timestamp: 200},
		{ID: "d", Timestamp: 200}, // tie with c
	}

	SortEvaluations(evals)
	want := []string{"b", "c", "d", "a"}
	for i, id := range want {
		if evals[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, evals[i].ID)
		}
	}

	// Sorting an already-sorted set returns the same set, ties included.
	SortEvaluations(evals)
	for i, id := range want {
		if evals[i].ID != id {
			t.Errorf("sort is not idempotent at position %d", i)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	yes := true

	valid := EvaluationDraft{
		ProjectID: "lia", UserType: UserTypeStudent,
		Innovation: 1, Design: 5, Functionality: 3, WouldPay: &yes,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid draft rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*EvaluationDraft)
		field  string
	}{
		{"zero innovation", func(d *EvaluationDraft) { d.Innovation = 0 }, "innovation"},
		{"design too high", func(d *EvaluationDraft) { d.Design = 6 }, "design"},
		{"negative functionality", func(d *EvaluationDraft) { d.Functionality = -1 }, "functionality"},
		{"bad user type", func(d *EvaluationDraft) { d.UserType = "robot" }, "userType"},
		{"unset wouldPay", func(d *EvaluationDraft) { d.WouldPay = nil }, "wouldPay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			err := d.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}
