// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmedina/expovote/catalog"
	"github.com/rmedina/expovote/localcache"
	"github.com/rmedina/expovote/metrics"
	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/remote"
)

// Bounded-wait contract: a submission resolves no later than ~Ceiling after
// the remote write starts, and never before Floor has elapsed.
const (
	DefaultCeiling = 3000 * time.Millisecond
	DefaultFloor   = 800 * time.Millisecond
)

// LocalOnlyWarning is the soft warning shown when the remote write failed
// outright. The local copy is kept either way.
const LocalOnlyWarning = "your vote is saved locally, a retry may be needed"

// Result is the user-visible outcome of one submission.
type Result struct {
	Outcome    string
	Evaluation models.Evaluation
	Warning    string
}

// Pipeline orchestrates a single evaluation write: optimistic local commit,
// bounded-wait remote commit, definite user-visible outcome.
type Pipeline struct {
	cache     *localcache.Cache
	connector remote.Connector

	// Ceiling and Floor default to the contract values; tests shrink them.
	Ceiling time.Duration
	Floor   time.Duration

	// commitMu serializes the read-prepend-write of the optimistic commit
	// so concurrent submissions cannot lose each other's record.
	commitMu sync.Mutex

	newID func() string
	now   func() time.Time
}

// New creates a Pipeline with the default timing contract.
func New(cache *localcache.Cache, connector remote.Connector) *Pipeline {
	return &Pipeline{
		cache:     cache,
		connector: connector,
		Ceiling:   DefaultCeiling,
		Floor:     DefaultFloor,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Submit validates draft, commits it locally, races the remote append
// against the ceiling and resolves after the floor. The local commit is
// never rolled back, whatever the remote does.
func (p *Pipeline) Submit(ctx context.Context, draft models.EvaluationDraft) (Result, error) {
	if err := draft.Validate(); err != nil {
		return Result{}, err
	}
	if _, ok := catalog.ByID(draft.ProjectID); !ok {
		return Result{}, &models.ValidationError{Field: "projectId", Reason: "unknown project"}
	}

	eval := models.Evaluation{
		ID:            p.newID(),
		ProjectID:     draft.ProjectID,
		UserType:      draft.UserType,
		Innovation:    draft.Innovation,
		Design:        draft.Design,
		Functionality: draft.Functionality,
		WouldPay:      *draft.WouldPay,
		Comment:       draft.Comment,
		Timestamp:     p.now().UnixMilli(),
	}

	// Optimistic commit: prepend and persist before anything touches the
	// network. Any sync subscriber sees the record from here on. A storage
	// error is reported but does not abort the submission.
	p.commitMu.Lock()
	snapshot := append([]models.Evaluation{eval}, p.cache.Read()...)
	if err := p.cache.Write(snapshot); err != nil {
		slog.Warn("optimistic commit failed", "error", err, "id", eval.ID)
	}
	p.commitMu.Unlock()

	// The remote append keeps running after Submit returns; an append that
	// outlives the ceiling is reconciled by the next fetch/push cycle.
	appendDone := make(chan error, 1)
	go func() {
		appendDone <- p.connector.Append(context.WithoutCancel(ctx), eval)
	}()

	// Floor timer starts now so visible feedback lasts at least Floor even
	// when the append returns instantly.
	floor := time.After(p.Floor)

	result := Result{Outcome: models.OutcomeAssumed, Evaluation: eval}
	select {
	case err := <-appendDone:
		if err != nil {
			slog.Warn("remote append failed, keeping local copy", "error", err, "id", eval.ID)
			result.Outcome = models.OutcomeLocalOnly
			result.Warning = LocalOnlyWarning
		} else {
			result.Outcome = models.OutcomeConfirmed
		}
	case <-time.After(p.Ceiling):
		// Not known to have failed, only slow. Reported as success: the
		// cache already holds the record.
		slog.Info("remote append still pending past ceiling, assuming success", "id", eval.ID)
	}

	<-floor

	metrics.Submissions.WithLabelValues(result.Outcome).Inc()
	slog.Info("evaluation submitted", "id", eval.ID, "project_id", eval.ProjectID, "outcome", result.Outcome)
	return result, nil
}
