// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the shared types of the Expovote sync core.

# Domain Types

  - Evaluation: one immutable rating record (id, projectId, userType,
    three 1-5 ratings, wouldPay, comment, millisecond timestamp)
  - EvaluationDraft: caller input before id/timestamp assignment
  - ConnectivityStatus: diagnostic flag for the active remote backend
  - Update: tagged union of {data snapshot, status change} delivered to
    sync subscribers on a single channel
  - Project / ProjectStats: catalog entry and admin aggregates

# Ordering

All snapshots handed to consumers are sorted by timestamp descending,
regardless of which backend produced them:

	models.SortEvaluations(evals)

The sort is stable and idempotent.

# Validation

Drafts are validated before any I/O:

	if err := draft.Validate(); err != nil {
		var verr *models.ValidationError
		// errors.As(err, &verr) for the offending field
	}
*/
package models
