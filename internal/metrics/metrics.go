// Package metrics provides Prometheus metrics collection for the calculator service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CalculationsTotal tracks quantity calculations by product type and outcome.
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantity_calculations_total",
			Help: "Total number of quantity calculations",
		},
		[]string{"type", "status"},
	)

	// CalculationDuration tracks quantity calculation duration.
	CalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quantity_calculation_duration_seconds",
			Help:    "Quantity calculation duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// PacksRecommended tracks the number of packs recommended per calculation.
	PacksRecommended = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommended_packs",
			Help:    "Number of packs recommended per successful calculation",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"type"},
	)
)

// Middleware collects HTTP metrics for every request passing through next.
// Requests are labelled with the matched route pattern when one is set.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(rec.status)

		HTTPRequestDuration.WithLabelValues(r.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(r.Method, path, statusCode).Inc()
	})
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordCalculation records metrics for a quantity calculation.
func RecordCalculation(productType, status string, duration time.Duration, packs int) {
	CalculationDuration.Observe(duration.Seconds())
	CalculationsTotal.WithLabelValues(productType, status).Inc()
	if status == StatusSuccess {
		PacksRecommended.WithLabelValues(productType).Observe(float64(packs))
	}
}

// Calculation outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
