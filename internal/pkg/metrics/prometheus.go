package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eventhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "eventhub",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Recommender metrics
	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventhub",
			Subsystem: "recommender",
			Name:      "requests_total",
			Help:      "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	recommenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "eventhub",
			Subsystem: "recommender",
			Name:      "invocation_duration_seconds",
			Help:      "Wall time of decision procedure invocations",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	recommenderInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "eventhub",
			Subsystem: "recommender",
			Name:      "processes_in_flight",
			Help:      "Number of decision procedure processes currently running",
		},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "eventhub",
			Subsystem: "recommender",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Domain metrics
	eventsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eventhub",
			Subsystem: "event",
			Name:      "created_total",
			Help:      "Total number of events created",
		},
	)

	ticketsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "eventhub",
			Subsystem: "ticket",
			Name:      "created_total",
			Help:      "Total number of tickets booked",
		},
	)

	catalogExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventhub",
			Subsystem: "catalog",
			Name:      "exports_total",
			Help:      "Candidate catalog exports by status",
		},
		[]string{"status"},
	)

	catalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "eventhub",
			Subsystem: "catalog",
			Name:      "candidates",
			Help:      "Number of candidates written by the last catalog export",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			routePattern = rctx.RoutePattern()
		}
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRecommendation records the outcome of one recommendation request
func RecordRecommendation(outcome string) {
	recommendationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveInvocation records the duration of one decision procedure run
func ObserveInvocation(duration time.Duration) {
	recommenderDuration.Observe(duration.Seconds())
}

// TrackProcess increments the in-flight process gauge and returns the
// matching decrement.
func TrackProcess() func() {
	recommenderInFlight.Inc()
	return recommenderInFlight.Dec
}

// SetBreakerState records the circuit breaker state
func SetBreakerState(name string, state float64) {
	breakerState.WithLabelValues(name).Set(state)
}

// RecordEventCreated records an event creation
func RecordEventCreated() {
	eventsCreatedTotal.Inc()
}

// RecordTicketCreated records a ticket booking
func RecordTicketCreated() {
	ticketsCreatedTotal.Inc()
}

// RecordCatalogExport records a catalog export run
func RecordCatalogExport(status string, candidates int) {
	catalogExportsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		catalogSize.Set(float64(candidates))
	}
}
