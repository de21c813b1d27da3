package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/coverage-calculator/internal/calculator"
	"github.com/eugenenazirov/coverage-calculator/internal/catalog"
	"github.com/eugenenazirov/coverage-calculator/internal/metrics"
	"github.com/eugenenazirov/coverage-calculator/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires calculator and storage dependencies into HTTP handlers.
type Handler struct {
	calculator calculator.Calculator
	storage    storage.Storage
	logger     *zap.Logger

	clock func() time.Time

	mu               sync.RWMutex
	catalogUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithLogger sets the logger used for calculation diagnostics.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(calc calculator.Calculator, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calc,
		storage:    store,
		logger:     zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.catalogUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	_ = r
	products, err := h.storage.ListProducts()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	configs := make([]catalog.Config, 0, len(products))
	for _, p := range products {
		if !p.Enabled {
			continue
		}
		cfg, err := catalog.Build(p)
		if err != nil {
			writeInternalError(w, err)
			return
		}
		configs = append(configs, cfg)
	}

	resp := productsResponse{
		Products:  configs,
		UpdatedAt: h.currentCatalogUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	cfg, ok := h.enabledProductConfig(w, r.PathValue("id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) handlePutProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	product := storage.Product{
		ID:                  r.PathValue("id"),
		Name:                req.Name,
		Enabled:             req.Enabled,
		Type:                req.Type,
		UseColourAttributes: req.UseColourAttributes,
		UseWeightAttributes: req.UseWeightAttributes,
		Settings:            req.Settings,
		Attributes:          req.Attributes,
	}

	if err := h.storage.SetProduct(product); err != nil {
		if errors.Is(err, storage.ErrInvalidProduct) {
			writeError(w, http.StatusBadRequest, "Invalid product", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markCatalogUpdated()

	stored, err := h.storage.GetProduct(product.ID)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	cfg, err := catalog.Build(stored)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := productResponse{
		Product:   cfg,
		UpdatedAt: h.currentCatalogUpdatedAt(),
		Message:   "Product settings updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if strings.TrimSpace(req.ProductID) == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "product_id is required")
		return
	}

	cfg, ok := h.enabledProductConfig(w, req.ProductID)
	if !ok {
		return
	}

	if calcType := strings.TrimSpace(req.CalcType); calcType != "" && calcType != string(cfg.Type) {
		h.writeValidationFailure(w, r, &calculator.ValidationError{
			Type:   cfg.Type,
			Field:  "calc_type",
			Reason: fmt.Sprintf("does not match the product calculator %q", cfg.Type),
		})
		return
	}

	start := time.Now()
	result, calcErr := h.calculator.Calculate(cfg.Type, cfg.Params, cfg.AvailableWeights, calculator.Input(req.InputData))
	elapsed := time.Since(start)

	if calcErr != nil {
		metrics.RecordCalculation(string(cfg.Type), metrics.StatusInvalid, elapsed, 0)
		if errors.Is(calcErr, calculator.ErrInvalidInput) {
			h.writeValidationFailure(w, r, calcErr)
			return
		}
		writeInternalError(w, calcErr)
		return
	}

	metrics.RecordCalculation(string(cfg.Type), metrics.StatusSuccess, elapsed, result.PackCount)
	writeJSON(w, http.StatusOK, NewCalculateResponse(result))
}

// enabledProductConfig loads the calculator configuration of id, writing a
// 404 when the product is unknown or has its calculator switched off.
func (h *Handler) enabledProductConfig(w http.ResponseWriter, id string) (catalog.Config, bool) {
	product, err := h.storage.GetProduct(id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found", err.Error())
			return catalog.Config{}, false
		}
		writeInternalError(w, err)
		return catalog.Config{}, false
	}
	if !product.Enabled {
		writeError(w, http.StatusNotFound, "Calculator disabled", fmt.Sprintf("calculator is not enabled for product %q", product.ID))
		return catalog.Config{}, false
	}

	cfg, err := catalog.Build(product)
	if err != nil {
		writeInternalError(w, err)
		return catalog.Config{}, false
	}
	return cfg, true
}

func (h *Handler) writeValidationFailure(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewFailureResponse(err)

	h.logger.Debug("calculation rejected",
		zap.String("field", resp.Field),
		zap.Error(err),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func (h *Handler) currentCatalogUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.catalogUpdatedAt
}

func (h *Handler) markCatalogUpdated() {
	h.mu.Lock()
	h.catalogUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type productRequest struct {
	Name                string              `json:"name"`
	Enabled             bool                `json:"enabled"`
	Type                string              `json:"type"`
	UseColourAttributes bool                `json:"useColourAttributes"`
	UseWeightAttributes bool                `json:"useWeightAttributes"`
	Settings            map[string]string   `json:"settings"`
	Attributes          map[string][]string `json:"attributes"`
}

type calculateRequest struct {
	ProductID string         `json:"product_id"`
	CalcType  string         `json:"calc_type"`
	InputData map[string]any `json:"input_data"`
}

type productsResponse struct {
	Products  []catalog.Config `json:"products"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type productResponse struct {
	Product   catalog.Config `json:"product"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Message   string         `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// writeJSON encodes payload before committing the status, so an
// unencodable payload still reaches the client as a JSON 500.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: "Internal error", Details: "unable to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
