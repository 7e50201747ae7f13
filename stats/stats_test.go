// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"testing"

	"github.com/rmedina/expovote/catalog"
	"github.com/rmedina/expovote/models"
)

func eval(project string, inn, des, fun int, pay bool) models.Evaluation {
	return models.Evaluation{
		ID: project + "-x", ProjectID: project, UserType: models.UserTypeStudent,
		Innovation: inn, Design: des, Functionality: fun, WouldPay: pay,
	}
}

func findStat(t *testing.T, stats []models.ProjectStats, id string) models.ProjectStats {
	t.Helper()
	for _, s := range stats {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("project %s missing from stats", id)
	return models.ProjectStats{}
}

func TestComputeCoversWholeCatalog(t *testing.T) {
	stats := Compute(nil)
	if len(stats) != len(catalog.All()) {
		t.Fatalf("expected one entry per catalog project, got %d", len(stats))
	}
	for _, s := range stats {
		if s.TotalVotes != 0 || s.AvgInnovation != 0 || s.PayYes != 0 {
			t.Errorf("zero-vote project should have zeroed stats: %+v", s)
		}
	}
}

func TestComputeAverages(t *testing.T) {
	evals := []models.Evaluation{
		eval("lia", 5, 4, 5, true),
		eval("lia", 4, 4, 3, false),
		eval("lia", 2, 5, 4, true),
	}

	st := findStat(t, Compute(evals), "lia")
	if st.TotalVotes != 3 {
		t.Errorf("expected 3 votes, got %d", st.TotalVotes)
	}
	// Averages rounded to one decimal: 11/3=3.7, 13/3=4.3, 12/3=4.0
	if st.AvgInnovation != 3.7 || st.AvgDesign != 4.3 || st.AvgFunctionality != 4.0 {
		t.Errorf("bad averages: %+v", st)
	}
	if st.PayYes != 2 || st.PayNo != 1 {
		t.Errorf("bad pay split: %+v", st)
	}
}

func TestRanked(t *testing.T) {
	evals := []models.Evaluation{
		eval("lia", 5, 5, 5, true),
		eval("lebab", 2, 2, 2, false),
	}

	ranked := Ranked(evals)
	if ranked[0].ID != "lia" {
		t.Errorf("expected lia to rank first, got %s", ranked[0].ID)
	}

	// Purchase intent is worth up to two bonus points.
	if got := Score(findStat(t, ranked, "lia")); got != 7 {
		t.Errorf("expected score 7 for a perfect project, got %v", got)
	}
	if got := Score(models.ProjectStats{}); got != 0 {
		t.Errorf("zero-vote project must score 0, got %v", got)
	}
}
