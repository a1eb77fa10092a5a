package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the assignment
// engine and the HTTP surface in front of it.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	outcomeTotal    *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	raceLostTotal   prometheus.Counter
	syncQueueDepth  prometheus.GaugeFunc
}

// NewMetricsService registers the engine's collectors. depthFn reports the
// calendar sync backlog; pass nil when the sync queue is disabled.
func NewMetricsService(depthFn func() int) *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	outcomeTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_outcomes_total",
		Help: "Assignment attempts by terminal purchase status",
	}, []string{"status"})

	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assignment_stage_duration_seconds",
		Help:    "Duration of each assignment pipeline stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	raceLostTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_slot_races_lost_total",
		Help: "Commits demoted to WAITLISTED by the slot uniqueness constraint",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	syncQueueDepth := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calendar_sync_queue_depth",
		Help: "Pending calendar mirror jobs",
	}, func() float64 {
		if depthFn == nil {
			return 0
		}
		return float64(depthFn())
	})

	registry.MustRegister(requestDuration, requestTotal, outcomeTotal, stageDuration, raceLostTotal, goroutines, syncQueueDepth)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		outcomeTotal:    outcomeTotal,
		stageDuration:   stageDuration,
		raceLostTotal:   raceLostTotal,
		syncQueueDepth:  syncQueueDepth,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordOutcome counts one finished assignment attempt.
func (m *MetricsService) RecordOutcome(status models.PurchaseStatus) {
	if m == nil {
		return
	}
	m.outcomeTotal.WithLabelValues(string(status)).Inc()
}

// ObserveStage records how long one pipeline stage took.
func (m *MetricsService) ObserveStage(stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRaceLost counts a commit demoted by the slot uniqueness constraint.
func (m *MetricsService) RecordRaceLost() {
	if m == nil {
		return
	}
	m.raceLostTotal.Inc()
}
