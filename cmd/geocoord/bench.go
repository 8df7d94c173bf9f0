package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/geocoord/internal/domain/coord"
	"github.com/kailas-cloud/geocoord/internal/intern"
	"github.com/kailas-cloud/geocoord/internal/metrics"
	healthuc "github.com/kailas-cloud/geocoord/internal/usecase/health"
)

type benchOptions struct {
	workers     int
	ops         int
	distinct    int
	metricsAddr string
	hold        bool
}

func newBenchCmd(a *app) *cobra.Command {
	opts := benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Hammer the interning caches from concurrent workers",
		Long: `Each worker creates Cartesian points drawn from a fixed pool, converts them to
spherical form and measures distances and angles, so most factory calls hit the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.metricsAddr == "" {
				opts.metricsAddr = a.cfg.Metrics.Addr
			}
			return runBench(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	cmd.Flags().IntVarP(&opts.ops, "ops", "n", 100000, "Total points to create across all workers")
	cmd.Flags().IntVar(&opts.distinct, "distinct", 1000, "Size of the point pool")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /healthz on this address (default from config)")
	cmd.Flags().BoolVar(&opts.hold, "hold", false, "Keep serving metrics after the run until interrupted")
	return cmd
}

func runBench(ctx context.Context, a *app, opts benchOptions, out io.Writer) error {
	if opts.workers <= 0 || opts.ops <= 0 || opts.distinct <= 0 {
		return fmt.Errorf("%w: workers, ops and distinct must be positive", coord.ErrInvalidArgument)
	}

	var ops *opsServer
	if opts.metricsAddr != "" {
		httpMetrics, err := metrics.NewHTTP(a.promReg, a.cfg.Metrics.Namespace)
		if err != nil {
			return fmt.Errorf("failed to register http metrics: %w", err)
		}
		ops = startOpsServer(opts.metricsAddr,
			newOpsRouter(a.promReg, healthuc.ForRegistry(a.registry), httpMetrics, a.logger), a.logger)
	}

	a.logger.Info("Starting bench",
		zap.Int("workers", opts.workers),
		zap.Int("ops", opts.ops),
		zap.Int("distinct", opts.distinct),
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	perWorker := opts.ops / opts.workers
	for w := range opts.workers {
		n := perWorker
		if w == opts.workers-1 {
			n = opts.ops - perWorker*(opts.workers-1)
		}
		g.Go(func() error {
			return benchWorker(gctx, a.registry, w, n, opts.distinct)
		})
	}
	benchErr := g.Wait()
	elapsed := time.Since(start)

	if benchErr == nil {
		printBenchReport(out, a.registry.Stats(), opts.ops, elapsed)
		a.logger.Info("Bench finished", zap.Duration("elapsed", elapsed))
	}

	if ops != nil {
		if benchErr == nil && opts.hold {
			a.logger.Info("Holding ops server until interrupted")
			<-ctx.Done()
		}
		if err := ops.stop(); err != nil && benchErr == nil {
			return fmt.Errorf("ops server: %w", err)
		}
	}
	return benchErr
}

func benchWorker(ctx context.Context, reg *coord.Registry, worker, n, distinct int) error {
	anchor, err := reg.Cartesian(1, 1, 1)
	if err != nil {
		return err
	}
	for i := range n {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		k := (i*7919 + worker) % distinct
		c, err := reg.Cartesian(float64(k)+0.5, float64(k%13)-6, float64(k%7))
		if err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}
		s, err := c.AsSpherical()
		if err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}
		if _, err := coord.Distance(c, anchor); err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}
		if _, err := coord.CentralAngle(s, anchor); err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}
	}
	return nil
}

func printBenchReport(out io.Writer, stats coord.RegistryStats, ops int, elapsed time.Duration) {
	fmt.Fprintf(out, "ops: %d in %v (%.0f ops/s)\n", ops, elapsed.Round(time.Microsecond), float64(ops)/elapsed.Seconds())
	for _, row := range []struct {
		name string
		s    intern.Stats
	}{
		{coord.KindCartesian.String(), stats.Cartesian},
		{coord.KindSpherical.String(), stats.Spherical},
	} {
		fmt.Fprintf(out, "%-9s entries=%d hits=%d misses=%d evictions=%d\n",
			row.name, row.s.Entries, row.s.Hits, row.s.Misses, row.s.Evictions)
	}
}
