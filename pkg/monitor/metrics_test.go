package monitor

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return NewMetrics(prometheus.NewRegistry())
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	return testutil.ToFloat64(g)
}

func TestMetrics_Observe(t *testing.T) {
	m := newTestMetrics(t)
	m.Observe(Sample{CPUPercent: 42.5, ReadKBps: 512, WriteKBps: 128})

	assert.InDelta(t, 42.5, testutil.ToFloat64(m.cpuBusy), 1e-9)
	assert.InDelta(t, 512.0, testutil.ToFloat64(m.readKBps), 1e-9)
	assert.InDelta(t, 128.0, testutil.ToFloat64(m.writeKBps), 1e-9)

	// gauges hold the latest tuple only
	m.Observe(Sample{CPUPercent: 10})
	assert.InDelta(t, 10.0, testutil.ToFloat64(m.cpuBusy), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.readKBps), 1e-9)
}

func TestMetrics_SampleError(t *testing.T) {
	m := newTestMetrics(t)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.errs), 1e-9)
	m.SampleError()
	m.SampleError()
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.errs), 1e-9)
}

func TestMetrics_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.Observe(Sample{CPUPercent: 1})

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["resmon_cpu_busy_percent"])
	assert.True(t, names["resmon_io_read_kbps"])
	assert.True(t, names["resmon_io_write_kbps"])
}
