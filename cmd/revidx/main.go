// Command revidx drives the inverted-index pipeline end to end: it loads
// configuration, builds the in-process transport, starts the coordinator
// (rank 0) and a fixed pool of worker ranks, and waits for both phases to
// finish. Shape grounded in cuemby-warren/cmd/warren/main.go: a cobra root
// command with persistent logging/metrics flags, cobra.OnInitialize wiring
// the logger, and a signal.Notify-based graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ygrebnov/revidx/config"
	"github.com/ygrebnov/revidx/coordinator"
	"github.com/ygrebnov/revidx/log"
	"github.com/ygrebnov/revidx/metrics"
	"github.com/ygrebnov/revidx/metrics/prom"
	"github.com/ygrebnov/revidx/pipeline"
	"github.com/ygrebnov/revidx/storage"
	"github.com/ygrebnov/revidx/transport"
	workers "github.com/ygrebnov/revidx"
)

var (
	// Version is set via -ldflags at build time.
	Version = "dev"
)

var (
	cfgPath     string
	logLevel    string
	logJSON     bool
	metricsAddr string
	workerCount uint
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "revidx",
	Short:   "Build an inverted index over a corpus of documents",
	Version: Version,
	RunE:    runPipeline,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (empty disables metrics)")
	rootCmd.PersistentFlags().UintVar(&workerCount, "workers", 0, "number of worker ranks (0 keeps the config/default value)")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	log.Init(log.Config{
		Level: log.Level(logLevel),
		JSON:  logJSON,
	})
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			log.Info("signal received, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	var opts []config.Option
	if workerCount > 0 {
		opts = append(opts, config.WithWorkers(workerCount))
	}
	if metricsAddr != "" {
		opts = append(opts, config.WithMetricsAddr(metricsAddr))
	}
	cfg = config.Apply(cfg, opts...)
	if err := config.Validate(&cfg); err != nil {
		return err
	}

	inputDir, tempDir, directIndexDir, reverseTempDir, reverseDir := cfg.DirPaths()
	layout := storage.Layout{
		InputDir:       inputDir,
		TempDir:        tempDir,
		DirectIndexDir: directIndexDir,
		ReverseTempDir: reverseTempDir,
		ReverseDir:     reverseDir,
	}

	if err := storage.EnsureDir(layout.InputDir); err != nil {
		return fmt.Errorf("revidx: ensure input dir: %w", err)
	}
	filenames, err := storage.ListSorted(layout.InputDir)
	if err != nil {
		return fmt.Errorf("revidx: list input dir: %w", err)
	}

	provider, stopMetrics := buildMetricsProvider(cfg.MetricsAddr)
	if stopMetrics != nil {
		defer stopMetrics()
	}

	n := int(cfg.Workers) + 1 // rank 0 (coordinator) + cfg.Workers worker ranks
	bus := transport.New(n, int(cfg.InboxBuffer))

	coord := coordinator.New(bus, layout, filenames, provider)

	pool := workers.NewOptions[int](ctx, workers.WithFixedPool(cfg.Workers), workers.WithStartImmediately())
	for rank := 1; rank < n; rank++ {
		rank := rank
		runner := pipeline.New(bus, rank, layout)
		if err := pool.AddTask(func(ctx context.Context) (int, error) {
			return rank, runner.Run(ctx)
		}); err != nil {
			return fmt.Errorf("revidx: start worker rank %d: %w", rank, err)
		}
	}

	coordErr := coord.Run(ctx)

	var workerErr error
	results := pool.GetResults()
	errs := pool.GetErrors()
	for i := 0; i < int(cfg.Workers); i++ {
		select {
		case <-results:
		case e := <-errs:
			if e != nil && workerErr == nil {
				workerErr = e
			}
		}
	}

	if coordErr != nil {
		return coordErr
	}
	return workerErr
}

// buildMetricsProvider returns a metrics.Provider and, if addr is non-empty,
// starts an HTTP server exposing it and a stop function to shut it down.
func buildMetricsProvider(addr string) (metrics.Provider, func()) {
	if addr == "" {
		return metrics.NewNoopProvider(), nil
	}

	p := prom.New()
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics server failed", err)
		}
	}()

	return p, func() {
		_ = srv.Close()
	}
}
