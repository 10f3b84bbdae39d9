package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	TransitionsApplied   = prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_transitions_total", Help: "Committed status transitions"})
	TransitionsRejected  = prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_transitions_rejected_total", Help: "Transitions rejected by validation"})
	NotificationsEmitted = prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_notifications_total", Help: "Cross-role notifications emitted"})
	ReworkSpawned        = prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_rework_tickets_total", Help: "Rework tickets auto-generated"})
	ReworkSpawnFailures  = prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_rework_spawn_failures_total", Help: "Rework spawns aborted without a child"})
	JobsGauge            = prometheus.NewGauge(prometheus.GaugeOpts{Name: "orders_jobs", Help: "Jobs currently in the registry"})
)

// Handler exposes /metrics HTTP handler with a singleton registry.
func Handler() http.Handler {
	once.Do(func() {
		prometheus.MustRegister(
			TransitionsApplied,
			TransitionsRejected,
			NotificationsEmitted,
			ReworkSpawned,
			ReworkSpawnFailures,
			JobsGauge,
		)
	})
	return promhttp.Handler()
}
