// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import "testing"

func TestByID(t *testing.T) {
	p, ok := ByID("lia")
	if !ok {
		t.Fatal("expected to find project lia")
	}
	if p.Name != "LIA" || p.Category != "ML" {
		t.Errorf("unexpected project: %+v", p)
	}

	if _, ok := ByID("nope"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestAllIsACopy(t *testing.T) {
	a := All()
	if len(a) == 0 {
		t.Fatal("catalog is empty")
	}

	a[0].Name = "MUTATED"
	if b := All(); b[0].Name == "MUTATED" {
		t.Error("All must return a copy, not the backing slice")
	}
}
