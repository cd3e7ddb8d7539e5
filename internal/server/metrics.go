package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry   *prometheus.Registry
	detections *prometheus.CounterVec
	rejected   prometheus.Counter
	clients    prometheus.Gauge
}

// NewMetrics registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skyshield_detections_total",
			Help: "Detections stored and broadcast, by source.",
		}, []string{"source"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skyshield_rejected_detections_total",
			Help: "Detections rejected by validation.",
		}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skyshield_ws_clients",
			Help: "Connected WebSocket clients.",
		}),
	}
	m.registry.MustRegister(m.detections, m.rejected, m.clients)
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
