package procfs

import "context"

// Source supplies the raw text of the two counter tables. Each call
// must return a fresh read; snapshots taken through a Source are only
// meaningful as pairs separated in time.
type Source interface {
	// CPU returns the current contents of the CPU time-in-state table.
	CPU(ctx context.Context) ([]byte, error)
	// Disks returns the current contents of the disk statistics table.
	Disks(ctx context.Context) ([]byte, error)
}
