package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics holds the Prometheus metrics for live sessions.
type serverMetrics struct {
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	patchesSent    prometheus.Counter
	patchBytes     prometheus.Counter
	updateDuration prometheus.Histogram
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)

	return &serverMetrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tessera",
			Subsystem: "live",
			Name:      "active_sessions",
			Help:      "Number of connected live sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tessera",
			Subsystem: "live",
			Name:      "sessions_total",
			Help:      "Total number of live sessions created",
		}),
		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tessera",
			Subsystem: "live",
			Name:      "patches_sent_total",
			Help:      "Total number of patches sent to clients",
		}),
		patchBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tessera",
			Subsystem: "live",
			Name:      "patch_bytes_total",
			Help:      "Total patch frame bytes sent to clients",
		}),
		updateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tessera",
			Subsystem: "live",
			Name:      "update_duration_seconds",
			Help:      "Time spent patching and flushing a session update",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
}
