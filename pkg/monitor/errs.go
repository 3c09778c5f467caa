package monitor

import "errors"

var (
	// ErrShapeMismatch indicates a delta between vectors of different
	// lengths. Unreachable with the fixed-shape /proc sources, but the
	// delta engine checks it anyway.
	ErrShapeMismatch = errors.New("monitor: vector shape mismatch")

	// ErrZeroInterval indicates two byte-identical CPU snapshots: no
	// jiffies elapsed, so there is nothing to divide by. Happens when
	// the sample interval is shorter than a kernel tick.
	ErrZeroInterval = errors.New("monitor: no jiffies elapsed between cpu snapshots")

	// ErrZeroMillis indicates a disk busy time of zero milliseconds
	// where a rate needs it as divisor. Common right after boot or on
	// an idle disk.
	ErrZeroMillis = errors.New("monitor: zero disk busy milliseconds")

	// ErrCounterReset indicates a raw disk counter that went backwards
	// between the two snapshots (reboot or wraparound).
	ErrCounterReset = errors.New("monitor: disk counter went backwards")

	// ErrSource indicates the counter source itself could not be read.
	// Unlike the conditions above this is not a property of one tick;
	// the run loop aborts after enough of these in a row.
	ErrSource = errors.New("monitor: counter source unreadable")
)
