// Package procfs parses the two kernel counter tables resmon samples:
// the aggregate CPU line of /proc/stat and the per-device rows of
// /proc/diskstats. Parsing is separated from acquisition (see Source)
// so that tests can feed synthetic blobs.
package procfs

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// CPUSnapshot holds the first four time-in-state counters of the
// aggregate cpu line: user, nice, system, idle jiffies. The counters
// are cumulative since boot and monotonically non-decreasing on a live
// system (wraparound aside).
type CPUSnapshot [4]int64

// Vector returns the snapshot fields as a slice in source order,
// suitable for the delta engine.
func (s CPUSnapshot) Vector() []int64 { return []int64{s[0], s[1], s[2], s[3]} }

// DiskSnapshot holds the sector and busy-time counters of one
// monitored disk, pulled from its /proc/diskstats row.
type DiskSnapshot struct {
	Name           string
	SectorsRead    int64
	ReadMillis     int64
	SectorsWritten int64
	WriteMillis    int64
}

// Vector returns the four counters in row order
// (sectors read, ms reading, sectors written, ms writing).
func (s DiskSnapshot) Vector() []int64 {
	return []int64{s.SectorsRead, s.ReadMillis, s.SectorsWritten, s.WriteMillis}
}

// ParseCPUSnapshot extracts the aggregate jiffy counters from the first
// line of a /proc/stat style blob. The line is split on single spaces
// (the "cpu" label is followed by two, so the empty token counts) and
// tokens 2 through 5 are taken as user, nice, system and idle.
//
// Fails with ErrParse when the line has fewer than 6 tokens or any of
// the four counters is not an integer.
func ParseCPUSnapshot(data []byte) (CPUSnapshot, error) {
	var snap CPUSnapshot

	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	tokens := strings.Split(string(line), " ")
	if len(tokens) < 6 {
		return snap, fmt.Errorf("%w: cpu line has %d tokens, want at least 6", ErrParse, len(tokens))
	}
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseInt(tokens[2+i], 10, 64)
		if err != nil {
			return snap, fmt.Errorf("%w: cpu token %d %q is not an integer", ErrParse, 2+i, tokens[2+i])
		}
		snap[i] = v
	}
	return snap, nil
}

// ParseDiskSnapshot scans a /proc/diskstats style blob for rows whose
// device name (field 2) is in disks, and returns the counters at fields
// 5, 6, 9 and 10 of the matching row. When several rows match, the last
// one wins; the original monitor behaved this way and consumers may
// depend on it.
//
// Fails with ErrDiskNotFound when no row matches, and with ErrParse
// when a matching row has fewer than 11 fields or non-numeric values in
// the required positions.
func ParseDiskSnapshot(data []byte, disks map[string]struct{}) (DiskSnapshot, error) {
	var (
		snap  DiskSnapshot
		found bool
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		name := fields[2]
		if _, ok := disks[name]; !ok {
			continue
		}
		if len(fields) < 11 {
			return DiskSnapshot{}, fmt.Errorf("%w: diskstats row for %s has %d fields, want at least 11",
				ErrParse, name, len(fields))
		}

		var vals [4]int64
		for i, idx := range [...]int{5, 6, 9, 10} {
			v, err := strconv.ParseInt(fields[idx], 10, 64)
			if err != nil {
				return DiskSnapshot{}, fmt.Errorf("%w: diskstats field %d for %s: %q is not an integer",
					ErrParse, idx, name, fields[idx])
			}
			vals[i] = v
		}
		snap = DiskSnapshot{
			Name:           name,
			SectorsRead:    vals[0],
			ReadMillis:     vals[1],
			SectorsWritten: vals[2],
			WriteMillis:    vals[3],
		}
		found = true
	}
	if err := sc.Err(); err != nil {
		return DiskSnapshot{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if !found {
		return DiskSnapshot{}, ErrDiskNotFound
	}
	return snap, nil
}
