// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submit is the submission pipeline: one evaluation write from draft
to definite user-visible outcome.

# Algorithm

 1. validate the draft (ratings in [1,5], wouldPay set, known project) -
    violations return a ValidationError before any I/O
 2. assign id (uuid) and timestamp (now, ms) - the record is immutable
 3. optimistic local commit: prepend to the cache snapshot, persist
 4. start the remote append concurrently
 5. select on {append done, 3000ms ceiling}, then wait out the 800ms floor

# Outcomes

  - confirmed: the remote acknowledged before the ceiling
  - assumed: the ceiling won the race; reported as success since the local
    copy holds the record and the next sync cycle reconciles
  - local_only: the remote returned a definite error; a soft warning is
    attached and the local commit is kept

The bounded wait is not cancellable once started but self-terminates at the
ceiling, so the user always has an answer within ~3.8s and never an
indefinite spinner.
*/
package submit
