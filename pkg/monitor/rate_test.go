package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/resmon/pkg/procfs"
)

func TestBusyPercent(t *testing.T) {
	t.Run("ten_percent_busy", func(t *testing.T) {
		// sum=100, idle=90 → 100 - 90 = 10
		pct, err := busyPercent([]int64{10, 0, 0, 90})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, pct, 1e-9)
	})
	t.Run("one_third_busy", func(t *testing.T) {
		// end-to-end delta of [100,0,0,300] → [110,0,0,320]
		pct, err := busyPercent([]int64{10, 0, 0, 20})
		require.NoError(t, err)
		assert.InDelta(t, 100.0/3, pct, 1e-9)
	})
	t.Run("fully_idle", func(t *testing.T) {
		pct, err := busyPercent([]int64{0, 0, 0, 100})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, pct, 1e-9)
	})
	t.Run("fully_busy", func(t *testing.T) {
		pct, err := busyPercent([]int64{100, 0, 0, 0})
		require.NoError(t, err)
		assert.InDelta(t, 100.0, pct, 1e-9)
	})
	t.Run("zero_total_is_an_error", func(t *testing.T) {
		_, err := busyPercent([]int64{0, 0, 0, 0})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrZeroInterval))
	})
}

func TestSnapshotBandwidth(t *testing.T) {
	t.Run("known_conversion", func(t *testing.T) {
		// 256 sectors = 1024 kb-units over 2s → 512; 128 = 512 over 1s → 512
		r, w, err := snapshotBandwidth(procfs.DiskSnapshot{
			Name:           "sda",
			SectorsRead:    256,
			ReadMillis:     2000,
			SectorsWritten: 128,
			WriteMillis:    1000,
		})
		require.NoError(t, err)
		assert.InDelta(t, 512.0, r, 1e-9)
		assert.InDelta(t, 512.0, w, 1e-9)
	})
	t.Run("zero_read_millis", func(t *testing.T) {
		_, _, err := snapshotBandwidth(procfs.DiskSnapshot{
			Name: "sda", SectorsRead: 10, ReadMillis: 0, SectorsWritten: 10, WriteMillis: 100,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrZeroMillis))
	})
	t.Run("zero_write_millis", func(t *testing.T) {
		_, _, err := snapshotBandwidth(procfs.DiskSnapshot{
			Name: "sda", SectorsRead: 10, ReadMillis: 100, SectorsWritten: 10, WriteMillis: 0,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrZeroMillis))
	})
}

func TestDeltaBandwidth(t *testing.T) {
	base := procfs.DiskSnapshot{
		Name:           "sda",
		SectorsRead:    256,
		ReadMillis:     2000,
		SectorsWritten: 128,
		WriteMillis:    1000,
	}

	t.Run("window_rate_from_counter_deltas", func(t *testing.T) {
		// +256 sectors over +2000ms and +128 over +1000ms → 512 kbps each
		second := procfs.DiskSnapshot{
			Name:           "sda",
			SectorsRead:    512,
			ReadMillis:     4000,
			SectorsWritten: 256,
			WriteMillis:    2000,
		}
		r, w, err := deltaBandwidth(base, second)
		require.NoError(t, err)
		assert.InDelta(t, 512.0, r, 1e-9)
		assert.InDelta(t, 512.0, w, 1e-9)
	})
	t.Run("idle_window_is_zero_not_error", func(t *testing.T) {
		r, w, err := deltaBandwidth(base, base)
		require.NoError(t, err)
		assert.Zero(t, r)
		assert.Zero(t, w)
	})
	t.Run("sectors_without_busy_time", func(t *testing.T) {
		second := base
		second.SectorsRead += 64 // moved data but accumulated no read time
		_, _, err := deltaBandwidth(base, second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrZeroMillis))
	})
	t.Run("counter_reset_is_surfaced", func(t *testing.T) {
		second := base
		second.SectorsRead = 0 // went backwards (reboot/wrap)
		_, _, err := deltaBandwidth(base, second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCounterReset))
	})
}
