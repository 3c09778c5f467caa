package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// maxConsecutiveFailures bounds how many ticks in a row may fail to
// read their counter sources before the run aborts. A single failed
// tick is recoverable; a permanently unreadable source is not.
const maxConsecutiveFailures = 5

// Runner drives repeated sampling for a bounded wall-clock duration,
// writing one metric line per successful tick. How long to run is the
// Runner's concern; how to sample is entirely the Sampler's.
type Runner struct {
	sampler *Sampler
	out     io.Writer
	logger  *slog.Logger
	metrics *Metrics

	now func() time.Time
}

// NewRunner wires a Sampler to its output stream. logger and metrics
// may be nil; a nil logger falls back to slog.Default and nil metrics
// disables exposition.
func NewRunner(sampler *Sampler, out io.Writer, logger *slog.Logger, metrics *Metrics) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		sampler: sampler,
		out:     out,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Run samples once per tick until the configured run time elapses or
// ctx is cancelled; cancellation (the graceful path) returns nil. Each
// tick already spans one SampleInterval inside Sample, so ticks follow
// each other back to back.
//
// Derivation failures (parse errors, zero divisors, counter resets,
// missing disk rows) skip the tick's line and keep the loop alive.
// Source-read failures back off for one interval and abort the run once
// maxConsecutiveFailures of them occur in a row.
func (r *Runner) Run(ctx context.Context) error {
	deadline := r.now().Add(r.sampler.cfg.RunTime)

	failures := 0
	for r.now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			r.logger.Info("run interrupted")
			return nil
		}

		sample, err := r.sampler.Sample(ctx)
		switch {
		case err == nil:
			failures = 0
			fmt.Fprintf(r.out, "CPU %.2f%% IO rkbps %.3f IO wkbps %.3f\n",
				sample.CPUPercent, sample.ReadKBps, sample.WriteKBps)
			if r.metrics != nil {
				r.metrics.Observe(sample)
			}

		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			r.logger.Info("run interrupted")
			return nil

		case errors.Is(err, ErrSource):
			failures++
			r.logger.Warn("counter source unreadable", "err", err, "consecutive", failures)
			if r.metrics != nil {
				r.metrics.SampleError()
			}
			if failures >= maxConsecutiveFailures {
				return fmt.Errorf("aborting after %d consecutive source failures: %w", failures, err)
			}
			// a failed read returns fast; pace the retries
			if err := sleepContext(ctx, r.sampler.cfg.SampleInterval); err != nil {
				r.logger.Info("run interrupted")
				return nil
			}

		default:
			// a failed pipeline cancels its sibling's sleep, so the
			// tick may have returned early; pace before retrying
			failures = 0
			r.logger.Warn("tick skipped", "err", err)
			if r.metrics != nil {
				r.metrics.SampleError()
			}
			if err := sleepContext(ctx, r.sampler.cfg.SampleInterval); err != nil {
				r.logger.Info("run interrupted")
				return nil
			}
		}
	}
	return nil
}
