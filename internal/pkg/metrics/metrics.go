package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "attendance"

// Result labels for clock events.
const (
	ResultOK        = "ok"
	ResultDuplicate = "duplicate"
	ResultNotFound  = "not_found"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

// Metrics holds the attendance collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	clockIns        *prometheus.CounterVec
	clockOuts       *prometheus.CounterVec
	lateMinutes     prometheus.Histogram
	overtimeMinutes prometheus.Histogram
	staleOpen       prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		clockIns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clock_ins_total",
				Help:      "Clock-in attempts by result",
			},
			[]string{"result"},
		),
		clockOuts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clock_outs_total",
				Help:      "Clock-out attempts by result",
			},
			[]string{"result"},
		),
		lateMinutes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "late_minutes",
				Help:      "Minutes late recorded at clock-in",
				Buckets:   []float64{0, 5, 15, 30, 60, 120, 240},
			},
		),
		overtimeMinutes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "overtime_minutes",
				Help:      "Overtime minutes recorded at clock-out",
				Buckets:   []float64{0, 15, 30, 60, 120, 240, 480},
			},
		),
		staleOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stale_open_records",
				Help:      "Records still clocked in from before yesterday",
			},
		),
	}

	registry.MustRegister(
		m.clockIns,
		m.clockOuts,
		m.lateMinutes,
		m.overtimeMinutes,
		m.staleOpen,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) ObserveClockIn(result string, lateMinutes int) {
	if m == nil {
		return
	}
	m.clockIns.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.lateMinutes.Observe(float64(lateMinutes))
	}
}

func (m *Metrics) ObserveClockOut(result string, overtimeMinutes int) {
	if m == nil {
		return
	}
	m.clockOuts.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.overtimeMinutes.Observe(float64(overtimeMinutes))
	}
}

func (m *Metrics) SetStaleOpenRecords(n int) {
	if m == nil {
		return
	}
	m.staleOpen.Set(float64(n))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
