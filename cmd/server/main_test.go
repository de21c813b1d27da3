package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eugenenazirov/coverage-calculator/internal/application"
)

func TestBuildRootHandler(t *testing.T) {
	var apiPaths []string
	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiPaths = append(apiPaths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	handler := application.BuildRootHandler(apiHandler)

	t.Run("describes service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		var body struct {
			Service   string   `json:"service"`
			Endpoints []string `json:"endpoints"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Service == "" || len(body.Endpoints) == 0 {
			t.Fatalf("expected service description, got %+v", body)
		}
	})

	t.Run("returns not found for unknown paths", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("forwards api and metrics traffic", func(t *testing.T) {
		for _, path := range []string{"/api/health", "/metrics"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected status 204 for %s, got %d", path, rec.Code)
			}
		}
		if len(apiPaths) != 2 {
			t.Fatalf("expected API handler to be invoked twice, got %v", apiPaths)
		}
	})
}
