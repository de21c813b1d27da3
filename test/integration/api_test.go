package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/coverage-calculator/internal/api"
	"github.com/eugenenazirov/coverage-calculator/internal/calculator"
	"github.com/eugenenazirov/coverage-calculator/internal/storage"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	store := storage.NewMemoryStorage()
	calc := calculator.New()
	handler := api.NewHandler(calc, store)
	logger := zaptest.NewLogger(t)
	return api.NewRouter(handler, logger, api.WithRateLimit(0, 0))
}

func performRequest(t *testing.T, handler http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newRouter(t)

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	update := map[string]any{
		"name":                "Rapid Levelling Compound",
		"enabled":             true,
		"type":                "leveller",
		"useWeightAttributes": true,
		"settings":            map[string]string{"leveller_density": "1.67"},
		"attributes":          map[string][]string{storage.AttributeWeight: {"5kg", "10kg|20kg"}},
	}
	rec = performRequest(t, handler, http.MethodPut, "/api/products/rapid-leveller", update)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from product update, got %d: %s", rec.Code, rec.Body.String())
	}

	calc := map[string]any{
		"product_id": "rapid-leveller",
		"calc_type":  "leveller",
		"input_data": map[string]any{"area": 10, "depth": "5"},
	}
	rec = performRequest(t, handler, http.MethodPost, "/api/calculate", calc)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from calculate, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Success       bool    `json:"success"`
		Quantity      int     `json:"quantity"`
		TotalKg       float64 `json:"total_kg"`
		PackBreakdown []struct {
			Size     float64 `json:"size"`
			Quantity int     `json:"quantity"`
		} `json:"pack_breakdown"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !response.Success || response.Quantity != 5 {
		t.Fatalf("unexpected response %+v", response)
	}
	if len(response.PackBreakdown) != 2 || response.PackBreakdown[0].Size != 20 || response.PackBreakdown[0].Quantity != 4 {
		t.Fatalf("unexpected breakdown %+v", response.PackBreakdown)
	}

	update["enabled"] = false
	rec = performRequest(t, handler, http.MethodPut, "/api/products/rapid-leveller", update)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from product update, got %d", rec.Code)
	}
	rec = performRequest(t, handler, http.MethodPost, "/api/calculate", calc)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for disabled calculator, got %d", rec.Code)
	}
}
