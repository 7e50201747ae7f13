// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: request/response logging via slog
  - CORS: permissive cross-origin headers for the voting frontend,
    including the X-Admin-Pin header used by admin requests

# Helpers

  - JSONResponse: write a JSON response with status code
  - ErrorResponse: write a models.ErrorResponse
  - ParseJSONBody: decode a request body
*/
package middleware
