package monitor

import "time"

// Defaults mirror the original monitor: two-second paired snapshots,
// one minute of total runtime, sda only.
const (
	DefaultSampleInterval = 2 * time.Second
	DefaultRunTime        = 60 * time.Second
)

// DefaultDisk is the device watched when no allow-list is given.
const DefaultDisk = "sda"

// Config is the immutable sampling configuration handed to NewSampler.
// Zero values fall back to the defaults above.
type Config struct {
	// SampleInterval separates the two snapshots inside one tick.
	SampleInterval time.Duration

	// RunTime bounds the whole reporting run.
	RunTime time.Duration

	// Disks is the allow-list of device names matched against field 2
	// of the disk statistics table.
	Disks []string

	// LegacyIORates reproduces the original order of operations for
	// I/O: a kbps pair derived from each snapshot independently, then
	// the difference of the two pairs. Off by default in favor of
	// delta-of-raw-counters-then-rate.
	LegacyIORates bool
}

func (c Config) withDefaults() Config {
	if c.SampleInterval <= 0 {
		c.SampleInterval = DefaultSampleInterval
	}
	if c.RunTime <= 0 {
		c.RunTime = DefaultRunTime
	}
	if len(c.Disks) == 0 {
		c.Disks = []string{DefaultDisk}
	}
	return c
}

func (c Config) diskSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Disks))
	for _, d := range c.Disks {
		set[d] = struct{}{}
	}
	return set
}
