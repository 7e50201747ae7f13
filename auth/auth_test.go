// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "testing"

func TestCheckPIN(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		expected string
		wantErr  bool
	}{
		{"matching PIN", "4621", "4621", false},
		{"wrong PIN", "0000", "4621", true},
		{"empty provided", "", "4621", true},
		{"empty configured PIN rejects everything", "4621", "", true},
		{"both empty still rejects", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPIN(tt.provided, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPIN(%q, %q) error = %v, wantErr %v", tt.provided, tt.expected, err, tt.wantErr)
			}
		})
	}
}
