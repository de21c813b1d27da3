package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/coverage-calculator/internal/api"
	"github.com/eugenenazirov/coverage-calculator/internal/calculator"
	"github.com/eugenenazirov/coverage-calculator/internal/config"
	"github.com/eugenenazirov/coverage-calculator/internal/storage"
)

const serviceName = "coverage-calculator"

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage    storage.Storage
	calculator calculator.Calculator
	handler    *api.Handler
	router     http.Handler
	logger     *zap.Logger
	server     *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if len(cfg.Products) == 0 {
		return nil, errors.New("failed to load product catalog: no products configured")
	}
	store := storage.NewMemoryStorage()
	if err := store.Replace(cfg.Products); err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}

	calc := calculator.New()
	handler := api.NewHandler(calc, store, api.WithLogger(logger))
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithTrustedProxy(cfg.TrustProxyHeaders),
	)

	server := NewServer(cfg, BuildRootHandler(apiRouter))

	logger.Info("product catalog loaded", zap.Int("products", len(cfg.Products)))

	return &App{
		storage:    store,
		calculator: calc,
		handler:    handler,
		router:     apiRouter,
		logger:     logger,
		server:     server,
	}, nil
}

// BuildRootHandler constructs the root HTTP handler that routes API and
// metrics requests and describes the service at "/".
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/metrics", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"service": serviceName,
			"endpoints": []string{
				"GET /api/health",
				"GET /api/products",
				"GET /api/products/{id}",
				"PUT /api/products/{id}",
				"POST /api/calculate",
				"GET /metrics",
			},
		})
	}))

	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
