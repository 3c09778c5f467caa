package monitor

import (
	"fmt"

	"github.com/ja7ad/resmon/pkg/procfs"
)

// Unit conversion constants shared by both I/O paths. The /128 divisor
// reproduces the original monitor's kilobyte units exactly; consumers
// of the output line are calibrated against it.
const (
	sectorSize      = 512
	kbDivisor       = 128
	millisPerSecond = 1000
)

// busyPercent derives CPU utilization from a jiffy delta vector
// [user, nice, system, idle]: 100 minus the idle share of all elapsed
// jiffies. A zero total surfaces ErrZeroInterval rather than a silent
// 0%, so a frozen interval never fakes an idle reading.
func busyPercent(d []int64) (float64, error) {
	var sum int64
	for _, v := range d {
		sum += v
	}
	if sum == 0 {
		return 0, fmt.Errorf("%w: delta %v", ErrZeroInterval, d)
	}
	idle := d[len(d)-1]
	return 100 - float64(idle)*100/float64(sum), nil
}

// snapshotBandwidth converts one snapshot's cumulative counters into a
// kbps pair the way the original monitor did at read time: sectors over
// total busy time since boot. Only the legacy path uses this; as a rate
// it is meaningless on its own and becomes a throughput estimate once
// two of them are differenced.
func snapshotBandwidth(s procfs.DiskSnapshot) (readKBps, writeKBps float64, err error) {
	if s.ReadMillis == 0 || s.WriteMillis == 0 {
		return 0, 0, fmt.Errorf("%w: disk %s read=%dms write=%dms",
			ErrZeroMillis, s.Name, s.ReadMillis, s.WriteMillis)
	}
	readKBps = sectorsToKB(s.SectorsRead) / millisToSec(s.ReadMillis)
	writeKBps = sectorsToKB(s.SectorsWritten) / millisToSec(s.WriteMillis)
	return readKBps, writeKBps, nil
}

// deltaBandwidth derives one kbps pair from the raw counter deltas of
// two snapshots taken interval-apart: sectors moved during the window
// over busy time accumulated during it. This is the default, corrected
// order of operations. An idle window (no sectors, no busy time) reads
// as zero throughput; sectors moved in zero busy time is an error, as
// is any counter running backwards.
func deltaBandwidth(first, second procfs.DiskSnapshot) (readKBps, writeKBps float64, err error) {
	d, err := Delta(first.Vector(), second.Vector())
	if err != nil {
		return 0, 0, err
	}
	for _, v := range d {
		if v < 0 {
			return 0, 0, fmt.Errorf("%w: disk %s delta %v", ErrCounterReset, second.Name, d)
		}
	}
	sectorsRead, readMillis, sectorsWritten, writeMillis := d[0], d[1], d[2], d[3]
	readKBps, err = windowRate(sectorsRead, readMillis, second.Name)
	if err != nil {
		return 0, 0, err
	}
	writeKBps, err = windowRate(sectorsWritten, writeMillis, second.Name)
	if err != nil {
		return 0, 0, err
	}
	return readKBps, writeKBps, nil
}

func windowRate(sectors, millis int64, disk string) (float64, error) {
	if millis == 0 {
		if sectors == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: disk %s moved %d sectors in zero busy time",
			ErrZeroMillis, disk, sectors)
	}
	return sectorsToKB(sectors) / millisToSec(millis), nil
}

func sectorsToKB(sectors int64) float64 {
	return float64(sectors) * sectorSize / kbDivisor
}

func millisToSec(millis int64) float64 {
	return float64(millis) / millisPerSecond
}
