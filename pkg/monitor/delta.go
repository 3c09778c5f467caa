// Package monitor derives utilization metrics from paired snapshots of
// cumulative kernel counters: two reads separated by a sampling
// interval, an element-wise delta, and a unit conversion into a CPU
// busy percentage and a disk read/write kbps pair.
package monitor

import "fmt"

// Delta returns the element-wise difference b[i]-a[i] of two
// equal-length vectors. Negative results pass through untouched:
// counter wraparound is a documented limitation of the sources, not
// something this layer corrects.
//
// Generic because CPU deltas are integer jiffy vectors while the legacy
// I/O path differences two already-derived float rate pairs.
func Delta[T int64 | float64](a, b []T) ([]T, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(a), len(b))
	}
	out := make([]T, len(a))
	for i := range a {
		out[i] = b[i] - a[i]
	}
	return out, nil
}
