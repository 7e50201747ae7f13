// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rmedina/expovote/catalog"
	"github.com/rmedina/expovote/cliparse"
	"github.com/rmedina/expovote/middleware"
	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/stats"
	"github.com/rmedina/expovote/submit"
	"github.com/rmedina/expovote/syncer"
)

type EvaluationHandler struct {
	sync     *syncer.Syncer
	pipeline *submit.Pipeline
	cfg      cliparse.Config
}

func NewEvaluationHandler(sync *syncer.Syncer, pipeline *submit.Pipeline, cfg cliparse.Config) *EvaluationHandler {
	return &EvaluationHandler{sync: sync, pipeline: pipeline, cfg: cfg}
}

// List handles GET /evaluations
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.sync.Evaluations())
}

// Submit handles POST /evaluations
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var draft models.EvaluationDraft
	if err := middleware.ParseJSONBody(r, &draft); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.pipeline.Submit(r.Context(), draft)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
			return
		}
		slog.Error("submission failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit evaluation")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitEvaluationResponse{
		Outcome:    result.Outcome,
		Evaluation: result.Evaluation,
		Warning:    result.Warning,
	})
}

// Status handles GET /status
func (h *EvaluationHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.sync.Status())
}

// Projects handles GET /projects
func (h *EvaluationHandler) Projects(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, catalog.All())
}

// Stats handles GET /stats
func (h *EvaluationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, stats.Compute(h.sync.Evaluations()))
}

// streamEvent is one server-sent event payload.
type streamEvent struct {
	Kind        string                     `json:"kind"` // "data" or "status"
	Evaluations []models.Evaluation        `json:"evaluations,omitempty"`
	Status      *models.ConnectivityStatus `json:"status,omitempty"`
}

// enqueueLatest queues u, evicting the oldest buffered update when the
// channel is full. Intermediate snapshots are expendable; a slow consumer
// must still converge to the current set.
func enqueueLatest(events chan models.Update, u models.Update) {
	for {
		select {
		case events <- u:
			return
		default:
			select {
			case <-events:
			default:
			}
		}
	}
}

// Stream handles GET /evaluations/stream as server-sent events. The
// subscription is torn down when the client disconnects, which is what
// stops the polling ticker / detaches the push listener for this consumer.
func (h *EvaluationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Updates arrive from connector goroutines; a buffered channel hands
	// them to this writer goroutine. A consumer too slow to drain the
	// buffer loses intermediate snapshots, never the latest one.
	events := make(chan models.Update, 16)
	unsubscribe := h.sync.Subscribe(r.Context(), func(u models.Update) {
		enqueueLatest(events, u)
	})
	defer unsubscribe()

	for {
		select {
		case u := <-events:
			ev := streamEvent{Kind: "data", Evaluations: u.Data}
			if u.Kind == models.StatusUpdate {
				ev = streamEvent{Kind: "status", Status: &u.Status}
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				slog.Error("failed to encode stream event", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
