// Package metrics expone contadores Prometheus del tracker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"futbol-tracker/internal/domain/matchlog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "futbol_tracker"

// Manager implementa matchlog.Observer y analysis.Observer.
type Manager struct {
	registry *prometheus.Registry

	sessionsStarted prometheus.Counter
	sessionsActive  prometheus.Gauge
	eventsRecorded  *prometheus.CounterVec

	analysisRequests *prometheus.CounterVec
	analysisLatency  prometheus.Histogram

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registra todo en un registry propio (tests sin colisiones con el global).
func New() *Manager {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Manager{
		registry: reg,
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Match sessions started.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Match sessions started and not yet ended.",
		}),
		eventsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_recorded_total",
			Help:      "Recorded match events by action and field third.",
		}, []string{"action", "third"}),
		analysisRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_requests_total",
			Help:      "Analysis requests by outcome.",
		}, []string{"outcome"}),
		analysisLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent waiting for the completion service.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		m.sessionsStarted,
		m.sessionsActive,
		m.eventsRecorded,
		m.analysisRequests,
		m.analysisLatency,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

func (m *Manager) Registry() *prometheus.Registry { return m.registry }

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Manager) SessionStarted() {
	m.sessionsStarted.Inc()
	m.sessionsActive.Inc()
}

func (m *Manager) SessionEnded() { m.sessionsActive.Dec() }

func (m *Manager) EventRecorded(zone matchlog.Zone, action matchlog.Action) {
	m.eventsRecorded.WithLabelValues(string(action), string(zone.Third())).Inc()
}

// AnalysisFinished: la latencia solo se observa cuando hubo llamada saliente.
func (m *Manager) AnalysisFinished(outcome string, elapsed time.Duration) {
	m.analysisRequests.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.analysisLatency.Observe(elapsed.Seconds())
	}
}

// Middleware mide cada request usando el patrón de ruta de chi (no el path crudo,
// para no crear una serie por sessionID).
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
		m.httpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
