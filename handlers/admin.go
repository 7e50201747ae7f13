// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmedina/expovote/auth"
	"github.com/rmedina/expovote/cliparse"
	"github.com/rmedina/expovote/middleware"
	"github.com/rmedina/expovote/models"
	"github.com/rmedina/expovote/remote"
	"github.com/rmedina/expovote/syncer"
)

type AdminHandler struct {
	sync *syncer.Syncer
	cfg  cliparse.Config
}

func NewAdminHandler(sync *syncer.Syncer, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{sync: sync, cfg: cfg}
}

func (h *AdminHandler) checkPIN(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.CheckPIN(r.Header.Get("X-Admin-Pin"), h.cfg.AdminPIN); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin PIN")
		return false
	}
	return true
}

// Clear handles POST /admin/clear
//
// The local cache is always wiped. A remote store that could not be fully
// cleared comes back as 200 with an explicit warning, never as a silent
// success: the admin must know the remote rows are still there.
func (h *AdminHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !h.checkPIN(w, r) {
		return
	}

	err := h.sync.Clear(r.Context())
	switch {
	case err == nil:
		slog.Info("database cleared")
		middleware.JSONResponse(w, http.StatusOK, models.ClearResponse{Cleared: true})

	case errors.Is(err, remote.ErrPartialClear):
		slog.Warn("remote store not cleared", "error", err)
		middleware.JSONResponse(w, http.StatusOK, models.ClearResponse{
			Cleared: true,
			Warning: "Local data cleared. The remote store could not be fully cleared: " + err.Error(),
		})

	default:
		var terr *remote.TransportError
		if errors.As(err, &terr) {
			slog.Warn("remote clear failed", "error", err)
			middleware.JSONResponse(w, http.StatusOK, models.ClearResponse{
				Cleared: true,
				Warning: "Local data cleared, but the remote clear failed: " + terr.Error(),
			})
			return
		}
		slog.Error("failed to clear local cache", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear local data")
	}
}

// Export handles GET /admin/export
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !h.checkPIN(w, r) {
		return
	}

	data, err := h.sync.ExportAll(r.Context())
	if err != nil {
		slog.Error("export failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to read evaluations for export")
		return
	}

	filename := fmt.Sprintf("expovote_results_%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
