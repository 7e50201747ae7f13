// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
)

var ErrInvalidPIN = errors.New("invalid admin PIN")

// CheckPIN validates the PIN supplied with an administrative request.
// Comparison is constant-time so the PIN length and content do not leak
// through response timing.
func CheckPIN(provided, expected string) error {
	if expected == "" {
		// Misconfiguration: never accept an empty PIN.
		return ErrInvalidPIN
	}
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidPIN
	}
	return nil
}
