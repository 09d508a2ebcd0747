package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fabsim/calculator"
	"fabsim/model"
)

// Metrics are the collectors exported on /metrics.
type Metrics struct {
	Simulations *prometheus.CounterVec
	Rejected    *prometheus.CounterVec
	Duration    prometheus.Histogram
	Connections prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fabsim_simulations_total",
			Help: "Simulations evaluated, by process, variant and surface.",
		}, []string{"process", "variant", "surface"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fabsim_rejected_requests_total",
			Help: "Simulation requests rejected for an unknown process or variant.",
		}, []string{"surface"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fabsim_evaluation_seconds",
			Help:    "Time spent evaluating one curve.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fabsim_websocket_connections",
			Help: "Open live page connections.",
		}),
	}
	reg.MustRegister(m.Simulations, m.Rejected, m.Duration, m.Connections)
	return m
}

// simulate runs one request through c and records it under surface.
func (m *Metrics) simulate(c calculator.Calculator, req model.SimulationRequest, surface string) (*model.Result, error) {
	start := time.Now()
	res, err := c.Simulate(req)
	if err != nil {
		m.Rejected.WithLabelValues(surface).Inc()
		return nil, err
	}
	m.Duration.Observe(time.Since(start).Seconds())
	m.Simulations.WithLabelValues(string(res.Request.Process), string(res.Request.Variant), surface).Inc()
	return res, nil
}
