// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rmedina/expovote/submit"
	"github.com/rmedina/expovote/syncer"
	"github.com/rmedina/expovote/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	cache := testutil.OpenTestCache(t)
	connector := testutil.NewFakeConnector()
	pipeline := submit.New(cache, connector)
	pipeline.Ceiling = 100 * time.Millisecond
	pipeline.Floor = 10 * time.Millisecond

	return NewRouter(syncer.New(cache, connector), pipeline, testutil.GetTestConfig())
}

func TestRoutes(t *testing.T) {
	mux := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{"health check", "GET", "/health", nil, http.StatusOK},
		{"root", "GET", "/", nil, http.StatusOK},
		{"projects", "GET", "/projects", nil, http.StatusOK},
		{"evaluations list", "GET", "/evaluations", nil, http.StatusOK},
		{"status", "GET", "/status", nil, http.StatusOK},
		{"stats", "GET", "/stats", nil, http.StatusOK},
		{"metrics", "GET", "/metrics", nil, http.StatusOK},
		{"submit rejects empty body", "POST", "/evaluations", nil, http.StatusBadRequest},
		{"clear without PIN", "POST", "/admin/clear", nil, http.StatusUnauthorized},
		{"export without PIN", "GET", "/admin/export", nil, http.StatusUnauthorized},
		{"export with PIN", "GET", "/admin/export", map[string]string{"X-Admin-Pin": "4621"}, http.StatusOK},
		{"wrong method on list", "DELETE", "/evaluations", nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, tt.path, nil, tt.headers)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
