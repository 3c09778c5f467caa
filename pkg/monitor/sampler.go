package monitor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ja7ad/resmon/pkg/procfs"
)

// Sample is one derived metric tuple, the product of one full
// double-snapshot cycle.
type Sample struct {
	CPUPercent float64
	ReadKBps   float64
	WriteKBps  float64
}

// Sampler runs the snapshot → sleep → snapshot → delta → derive cycle
// for the CPU and disk pipelines. It keeps no state across calls; every
// Sample starts from two fresh snapshots.
type Sampler struct {
	src   procfs.Source
	cfg   Config
	disks map[string]struct{}

	// sleep is swappable so tests don't pay real interval time.
	sleep func(context.Context, time.Duration) error
}

// NewSampler builds a Sampler reading from src. Zero-valued cfg fields
// fall back to the defaults.
func NewSampler(src procfs.Source, cfg Config) *Sampler {
	cfg = cfg.withDefaults()
	return &Sampler{
		src:   src,
		cfg:   cfg,
		disks: cfg.diskSet(),
		sleep: sleepContext,
	}
}

// Sample performs one cycle and returns the derived tuple. The CPU and
// disk pipelines each bracket their own SampleInterval sleep and run
// concurrently, so a call blocks for roughly one interval. Cancelling
// ctx interrupts a pending sleep and returns the context's error.
//
// Failures are typed: parse and derivation conditions are local to the
// tick, while anything wrapping ErrSource means the counter table
// itself could not be read.
func (s *Sampler) Sample(ctx context.Context) (Sample, error) {
	var out Sample

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pct, err := s.sampleCPU(gctx)
		if err != nil {
			return err
		}
		out.CPUPercent = pct
		return nil
	})
	g.Go(func() error {
		r, w, err := s.sampleIO(gctx)
		if err != nil {
			return err
		}
		out.ReadKBps, out.WriteKBps = r, w
		return nil
	})
	if err := g.Wait(); err != nil {
		return Sample{}, err
	}
	return out, nil
}

func (s *Sampler) sampleCPU(ctx context.Context) (float64, error) {
	first, err := s.readCPU(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.sleep(ctx, s.cfg.SampleInterval); err != nil {
		return 0, err
	}
	second, err := s.readCPU(ctx)
	if err != nil {
		return 0, err
	}
	d, err := Delta(first.Vector(), second.Vector())
	if err != nil {
		return 0, err
	}
	return busyPercent(d)
}

func (s *Sampler) sampleIO(ctx context.Context) (readKBps, writeKBps float64, err error) {
	first, err := s.readDisk(ctx)
	if err != nil {
		return 0, 0, err
	}
	if err := s.sleep(ctx, s.cfg.SampleInterval); err != nil {
		return 0, 0, err
	}
	second, err := s.readDisk(ctx)
	if err != nil {
		return 0, 0, err
	}

	if s.cfg.LegacyIORates {
		r1, w1, err := snapshotBandwidth(first)
		if err != nil {
			return 0, 0, err
		}
		r2, w2, err := snapshotBandwidth(second)
		if err != nil {
			return 0, 0, err
		}
		d, err := Delta([]float64{r1, w1}, []float64{r2, w2})
		if err != nil {
			return 0, 0, err
		}
		return d[0], d[1], nil
	}
	return deltaBandwidth(first, second)
}

func (s *Sampler) readCPU(ctx context.Context) (procfs.CPUSnapshot, error) {
	data, err := s.src.CPU(ctx)
	if err != nil {
		return procfs.CPUSnapshot{}, fmt.Errorf("%w: cpu: %w", ErrSource, err)
	}
	return procfs.ParseCPUSnapshot(data)
}

func (s *Sampler) readDisk(ctx context.Context) (procfs.DiskSnapshot, error) {
	data, err := s.src.Disks(ctx)
	if err != nil {
		return procfs.DiskSnapshot{}, fmt.Errorf("%w: disks: %w", ErrSource, err)
	}
	return procfs.ParseDiskSnapshot(data, s.disks)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
