// Package metrics exposes Prometheus collectors for HTTP traffic and the
// task store.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-tracker/internal/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "task_tracker"

// Metrics holds every collector the service records into.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	TasksAppended       prometheus.Counter
	TasksStored         prometheus.GaugeFunc
}

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates the service collectors and registers them with reg.
// storedTasks is sampled at scrape time for the tasks_stored gauge.
func New(reg *prometheus.Registry, storedTasks func() int) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route", "status"},
		),
		TasksAppended: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_appended_total",
			Help:      "Total number of tasks appended since process start",
		}),
		TasksStored: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_stored",
			Help:      "Number of tasks currently held in memory",
		}, func() float64 {
			return float64(storedTasks())
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequestDuration observes one request.
func (m *Metrics) RecordHTTPRequestDuration(method, route string, status int, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// HandleEvent implements events.EventHandler. Events may arrive out of
// order, so only the counter is touched here.
func (m *Metrics) HandleEvent(ctx context.Context, event *events.TaskAppendedEvent) error {
	m.TasksAppended.Inc()
	return nil
}

// Middleware records the duration of every request, labelled by the chi
// route pattern so that path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RecordHTTPRequestDuration(r.Method, route, status, time.Since(start))
	})
}
