// internal/app/system/metrics/metrics.go
//
// Package metrics holds the Prometheus collectors for inbound HTTP traffic,
// outbound backend calls and workflow submissions.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "assetdesk"

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_in_flight_requests",
		Help:      "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend calls by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend call latencies in seconds, including retries.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	backendRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_retries_total",
			Help:      "Backend call retries by operation.",
		},
		[]string{"op"},
	)

	workflowSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_submissions_total",
			Help:      "Assign/unassign submissions by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	workflowPairsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_pairs_total",
			Help:      "Individual asset/employee calls fired by submissions.",
		},
		[]string{"mode", "outcome"},
	)

	inventoryAssets = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_assets",
			Help:      "Assets by status, as of the last inventory refresh.",
		},
		[]string{"status"},
	)

	overdueAssignments = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_overdue_assignments",
		Help:      "Active temporary assignments past their expected return date.",
	})

	inventoryRefreshed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_last_refresh_timestamp_seconds",
		Help:      "Unix time of the last successful inventory refresh.",
	})
)

var initOnce sync.Once

// Init registers the collectors with the default registry. Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight, httpRequestsTotal, httpRequestDuration,
			backendRequestsTotal, backendRequestDuration, backendRetriesTotal,
			workflowSubmissionsTotal, workflowPairsTotal,
			inventoryAssets, overdueAssignments, inventoryRefreshed,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome labels.
const (
	OK    = "ok"
	Error = "error"
)

func outcome(err error) string {
	if err != nil {
		return Error
	}
	return OK
}

// ObserveBackend records one backend call (all attempts included).
func ObserveBackend(op string, start time.Time, err error) {
	backendRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	backendRequestsTotal.WithLabelValues(op, outcome(err)).Inc()
}

// ObserveRetry counts one retry of op.
func ObserveRetry(op string) {
	backendRetriesTotal.WithLabelValues(op).Inc()
}

// ObserveSubmission records a workflow submission and its per-pair results.
func ObserveSubmission(mode string, pairs, failed int, err error) {
	workflowSubmissionsTotal.WithLabelValues(mode, outcome(err)).Inc()
	if ok := pairs - failed; ok > 0 {
		workflowPairsTotal.WithLabelValues(mode, OK).Add(float64(ok))
	}
	if failed > 0 {
		workflowPairsTotal.WithLabelValues(mode, Error).Add(float64(failed))
	}
}

// SetInventory replaces the inventory gauges. Statuses missing from
// byStatus are reported as zero.
func SetInventory(statuses []string, byStatus map[string]int, overdue int, at time.Time) {
	for _, st := range statuses {
		inventoryAssets.WithLabelValues(st).Set(float64(byStatus[st]))
	}
	overdueAssignments.Set(float64(overdue))
	inventoryRefreshed.Set(float64(at.Unix()))
}

// Instrument measures in-flight requests, counts and latency, labelled with
// the chi route pattern so ids don't explode cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		defer httpInFlight.Dec()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.code)).Inc()
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
