package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebulaframe/pkg/config"
	"github.com/ajitpratap0/nebulaframe/pkg/frame"
	"github.com/ajitpratap0/nebulaframe/pkg/frameio"
	"github.com/ajitpratap0/nebulaframe/pkg/logger"
	"github.com/ajitpratap0/nebulaframe/pkg/observability"
)

type benchOptions struct {
	configFile string
	logLevel   string
	rows       int
	iterations int
	seed       uint64
	trace      bool
}

func newBenchCommand() *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time selection, sampling, dedup and export over a synthetic table",
		Long: `Build a synthetic price table and time the common table operations on it.
Each iteration of each step runs inside a trace span; --trace writes the
spans to stderr as JSON.

Example:
  framectl bench --rows 100000 --iterations 5 --trace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configFile, opts.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var traceOut io.Writer
			if opts.trace {
				traceOut = cmd.ErrOrStderr()
			}
			return runBench(cmd.Context(), cmd.OutOrStdout(), traceOut, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "Path to frame configuration YAML file (optional)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	cmd.Flags().IntVar(&opts.rows, "rows", 10_000, "Number of days to generate")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 3, "Runs per step")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 42, "Random walk and sampling seed")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Export trace spans to stderr")

	return cmd
}

// benchStep is one timed operation over the source table.
type benchStep struct {
	name string
	run  func(tbl *frame.Table[time.Time]) (rows int, err error)
}

func benchSteps(seed uint64) []benchStep {
	return []benchStep{
		{"select", func(tbl *frame.Table[time.Time]) (int, error) {
			out, err := frame.SelectBy1(tbl, "close", func(_ time.Time, c float64) bool { return c > 100 })
			if err != nil {
				return 0, err
			}
			return out.Len(), nil
		}},
		{"sample", func(tbl *frame.Table[time.Time]) (int, error) {
			out, err := tbl.DataByRand(frame.SeededFracRows, 0.5, seed)
			if err != nil {
				return 0, err
			}
			return out.Len(), nil
		}},
		{"dedup", func(tbl *frame.Table[time.Time]) (int, error) {
			out, err := tbl.RemoveDuplicates([]string{"bucket"}, false, frame.KeepFirst)
			if err != nil {
				return 0, err
			}
			return out.Len(), nil
		}},
		{"csv", func(tbl *frame.Table[time.Time]) (int, error) {
			return tbl.Len(), frameio.WriteCSV(io.Discard, tbl, frameio.CSVOptions{})
		}},
		{"arrow", func(tbl *frame.Table[time.Time]) (int, error) {
			rec, err := frameio.ToArrow(tbl, memory.DefaultAllocator)
			if err != nil {
				return 0, err
			}
			defer rec.Release()
			return int(rec.NumRows()), nil
		}},
	}
}

func runBench(ctx context.Context, w, traceOut io.Writer, cfg *config.FrameConfig, opts benchOptions) (err error) {
	if opts.rows < 1 {
		return fmt.Errorf("rows must be positive, got %d", opts.rows)
	}
	if opts.iterations < 1 {
		return fmt.Errorf("iterations must be positive, got %d", opts.iterations)
	}

	rate := 0.0
	if traceOut != nil {
		rate = cfg.Observability.TraceSamplingRate
	}
	tr, err := observability.NewTracing(observability.TracingConfig{
		ServiceName:    "framectl",
		ServiceVersion: version,
		SamplingRate:   rate,
		Writer:         traceOut,
	})
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := tr.Shutdown(context.Background()); err == nil {
			err = shutdownErr
		}
	}()

	monitor, err := observability.NewResourceMonitor()
	if err != nil {
		return err
	}

	ctx, root := tr.Start(ctx, "bench", attribute.Int("rows", opts.rows), attribute.Int("iterations", opts.iterations))
	defer func() { root.End(err) }()

	_, span := tr.Start(ctx, "bench.build")
	tbl, err := buildPrices(cfg, opts.rows, opts.seed)
	build := span.End(err)
	if err != nil {
		return err
	}
	volumes, err := frame.GetColumn[int64](tbl, "volume")
	if err != nil {
		return err
	}
	buckets := make([]int64, len(volumes.Values()))
	for i, v := range volumes.Values() {
		buckets[i] = v / 10_000
	}
	if _, err := frame.LoadColumn(tbl, "bucket", buckets, frame.PadWithNaNs); err != nil {
		return err
	}

	fmt.Fprintf(w, "%-8s %10s %10s %14s\n", "STEP", "ROWS", "RUNS", "AVG")
	fmt.Fprintf(w, "%-8s %10d %10d %14s\n", "build", tbl.Len(), 1, build)

	ctx = context.WithValue(ctx, logger.TableKey, tbl.Name())
	for _, step := range benchSteps(opts.seed) {
		stepCtx := context.WithValue(ctx, logger.OperationKey, step.name)
		log := logger.WithContext(stepCtx)

		var total time.Duration
		var rows int
		for i := 0; i < opts.iterations; i++ {
			_, span := tr.Start(stepCtx, "bench."+step.name, attribute.Int("iteration", i))
			rows, err = step.run(tbl)
			span.SetAttributes(attribute.Int("rows_out", rows))
			total += span.End(err)
			if err != nil {
				log.Warn("bench step failed", zap.Int("iteration", i), zap.Error(err))
				return fmt.Errorf("%s: %w", step.name, err)
			}
		}
		avg := total / time.Duration(opts.iterations)
		fmt.Fprintf(w, "%-8s %10d %10d %14s\n", step.name, rows, opts.iterations, avg)
		log.Debug("bench step finished",
			zap.Int("rows", rows),
			zap.Duration("avg", avg))
	}

	usage, err := monitor.Usage()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, usage)
	return nil
}
