package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes the most recent sample through Prometheus collectors.
// Gauges hold the last derived tuple only; no history is kept here.
type Metrics struct {
	cpuBusy   prometheus.Gauge
	readKBps  prometheus.Gauge
	writeKBps prometheus.Gauge
	errs      prometheus.Counter
}

// NewMetrics registers the resmon collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		cpuBusy: factory.NewGauge(prometheus.GaugeOpts{
			Name: "resmon_cpu_busy_percent",
			Help: "CPU busy share over the last sampling interval.",
		}),
		readKBps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "resmon_io_read_kbps",
			Help: "Disk read throughput over the last sampling interval.",
		}),
		writeKBps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "resmon_io_write_kbps",
			Help: "Disk write throughput over the last sampling interval.",
		}),
		errs: factory.NewCounter(prometheus.CounterOpts{
			Name: "resmon_sample_errors_total",
			Help: "Sampling ticks that produced no metric line.",
		}),
	}
}

// Observe publishes one derived sample.
func (m *Metrics) Observe(s Sample) {
	m.cpuBusy.Set(s.CPUPercent)
	m.readKBps.Set(s.ReadKBps)
	m.writeKBps.Set(s.WriteKBps)
}

// SampleError counts a tick that emitted no line.
func (m *Metrics) SampleError() { m.errs.Inc() }
