//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ja7ad/resmon/pkg/monitor"
	"github.com/ja7ad/resmon/pkg/procfs"
)

type opts struct {
	interval time.Duration
	runTime  time.Duration
	disks    []string
	legacyIO bool
	listen   string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "resmon",
		Short: "CPU and disk utilization monitor",
		Long: `resmon samples the kernel's cumulative CPU and disk counters twice per
reporting tick, one sampling interval apart, and prints the derived CPU
busy percentage and disk read/write throughput in kbps. It runs for a
bounded time, then exits.

Examples:
  resmon
  resmon -i 1s -t 5m -d sda -d nvme0n1
  resmon --legacy-io --listen :9301`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}

	root.Flags().DurationVarP(&o.interval, "interval", "i", monitor.DefaultSampleInterval,
		"gap between the two snapshots of one tick (e.g. 2s, 500ms)")
	root.Flags().DurationVarP(&o.runTime, "run-time", "t", monitor.DefaultRunTime,
		"total wall-clock time before a graceful stop")
	root.Flags().StringSliceVarP(&o.disks, "disk", "d", []string{monitor.DefaultDisk},
		"disk device to monitor (repeatable)")
	root.Flags().BoolVar(&o.legacyIO, "legacy-io", false,
		"reproduce the original rate-then-delta I/O arithmetic")
	root.Flags().StringVar(&o.listen, "listen", "",
		"optional address for a Prometheus /metrics endpoint")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	if o.interval <= 0 {
		return fmt.Errorf("interval must be > 0")
	}
	if o.runTime <= 0 {
		return fmt.Errorf("run-time must be > 0")
	}
	if len(o.disks) == 0 {
		return fmt.Errorf("at least one disk is required")
	}

	// Ctrl-C / SIGTERM end the run cleanly
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sampler := monitor.NewSampler(procfs.NewProcSource(), monitor.Config{
		SampleInterval: o.interval,
		RunTime:        o.runTime,
		Disks:          o.disks,
		LegacyIORates:  o.legacyIO,
	})

	var metrics *monitor.Metrics
	if o.listen != "" {
		reg := prometheus.NewRegistry()
		metrics = monitor.NewMetrics(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: o.listen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics listener failed", "err", err)
			}
		}()
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	return monitor.NewRunner(sampler, os.Stdout, slog.Default(), metrics).Run(ctx)
}
