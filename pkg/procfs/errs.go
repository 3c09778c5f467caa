package procfs

import "errors"

var (
	// ErrParse indicates malformed or truncated counter text.
	ErrParse = errors.New("procfs: malformed counter data")

	// ErrDiskNotFound indicates that no diskstats row matched the
	// monitored disk set.
	ErrDiskNotFound = errors.New("procfs: no matching disk")
)
