// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth gates the administrative operations (clear, export).

Admin requests carry the PIN in the X-Admin-Pin header; handlers validate
it against the configured PIN:

	if err := auth.CheckPIN(r.Header.Get("X-Admin-Pin"), cfg.AdminPIN); err != nil {
		// 401
	}

The comparison is constant-time. An empty configured PIN is treated as a
misconfiguration and rejects everything rather than accepting everything.
*/
package auth
