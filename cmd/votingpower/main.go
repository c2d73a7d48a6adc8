// Package main is the entry point for the REG voting power evaluator.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/fd1az/reg-voting-power/business/boost"
	boostApp "github.com/fd1az/reg-voting-power/business/boost/app"
	boostDI "github.com/fd1az/reg-voting-power/business/boost/di"
	"github.com/fd1az/reg-voting-power/business/liquidity"
	liquidityApp "github.com/fd1az/reg-voting-power/business/liquidity/app"
	liquidityDI "github.com/fd1az/reg-voting-power/business/liquidity/di"
	liquidityDomain "github.com/fd1az/reg-voting-power/business/liquidity/domain"
	"github.com/fd1az/reg-voting-power/internal/apm"
	"github.com/fd1az/reg-voting-power/internal/apperror"
	"github.com/fd1az/reg-voting-power/internal/config"
	"github.com/fd1az/reg-voting-power/internal/logger"
	"github.com/fd1az/reg-voting-power/internal/metrics"
	"github.com/fd1az/reg-voting-power/internal/monolith"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Parse flags
	configPath := flag.String("config", "", "Path to configuration file")
	inputPath := flag.String("input", "-", "Pool snapshot JSON file (- for stdin)")
	format := flag.String("format", "", "Output format: json or console (overrides evaluation.format)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("votingpower %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Setup context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *inputPath, *format); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, inputPath, format string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if format != "" {
		cfg.Evaluation.Format = format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// Logs go to stderr so stdout only carries the report
	log := newLogger(os.Stderr, cfg)
	log.Info(ctx, "starting voting power evaluation",
		"version", version,
		"environment", cfg.App.Environment,
	)

	tel, err := setupTelemetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer tel.shutdown(ctx, log)

	// Create monolith
	mono, err := monolith.New(cfg, log)
	if err != nil {
		return err
	}
	mono.Container().Register(monolith.ServiceMeter, tel.meter)
	mono.Container().Register(monolith.ServiceTracer, tel.tracer)

	modules := []monolith.Module{
		&liquidity.Module{},
		&boost.Module{},
	}
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	snapshots, err := readSnapshots(inputPath)
	if err != nil {
		return err
	}

	ctx, span := tel.tracer.StartSpanFromContext(ctx, "votingpower.evaluate")
	defer span.End()

	results, err := evaluate(ctx, liquidityDI.GetValuator(mono.Services()), boostDI.GetBatchEvaluator(mono.Services()), snapshots)
	if err != nil {
		span.NoticeError(err)
		logFailure(ctx, log, err)
		return err
	}
	span.SetAttributes(
		attribute.Int("votingpower.snapshots", len(snapshots)),
		attribute.Int("votingpower.legs", len(results)),
	)

	return boostDI.GetReporter(mono.Services()).Report(ctx, results)
}

// logFailure logs err with its code, cause and stack when it carries an
// AppError.
func logFailure(ctx context.Context, log logger.LoggerInterface, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		log.Error(ctx, "evaluation failed", "failure", appErr.ToLog())
		return
	}
	log.Error(ctx, "evaluation failed", "error", err)
}

// newLogger writes human-readable lines alongside the console report and
// JSON lines otherwise.
func newLogger(w io.Writer, cfg *config.Config) logger.LoggerInterface {
	level := logger.ParseLevel(cfg.App.LogLevel)
	if cfg.Evaluation.Format == config.FormatConsole {
		return logger.NewConsole(w, level, cfg.App.Name)
	}
	return logger.New(w, level, cfg.App.Name, nil)
}

func evaluate(
	ctx context.Context,
	valuator *liquidityApp.Valuator,
	batch *boostApp.BatchEvaluator,
	snapshots []liquidityDomain.PoolSnapshot,
) ([]boostApp.LegResult, error) {
	var legs []liquidityApp.Leg
	for _, snap := range snapshots {
		l, err := valuator.Value(ctx, snap)
		if err != nil {
			return nil, err
		}
		legs = append(legs, l...)
	}
	return batch.Evaluate(ctx, legs)
}

// readSnapshots accepts either one pool snapshot or an array of them.
func readSnapshots(path string) ([]liquidityDomain.PoolSnapshot, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var many []liquidityDomain.PoolSnapshot
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}

	var one liquidityDomain.PoolSnapshot
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("failed to decode pool snapshot: %w", err)
	}
	return []liquidityDomain.PoolSnapshot{one}, nil
}

type telemetry struct {
	tracer        apm.Tracer
	meter         metric.Meter
	traceProvider apm.TraceProvider
	meterProvider metrics.MetricProvider
	stopMetrics   context.CancelFunc
}

// setupTelemetry installs tracing and metrics when telemetry is enabled and
// no-op implementations otherwise.
func setupTelemetry(ctx context.Context, cfg *config.Config, log logger.LoggerInterface) (*telemetry, error) {
	tel := &telemetry{
		tracer:      apm.NewTracer(cfg.App.Name),
		meter:       noop.NewMeterProvider().Meter(boostApp.MeterName),
		stopMetrics: func() {},
	}
	if !cfg.Telemetry.Enabled {
		return tel, nil
	}

	tp, err := apm.NewTraceProvider(log,
		apm.WithProvider(apm.ParseProvider(cfg.Telemetry.TraceProvider)),
		apm.WithEndpoint(cfg.Telemetry.OTLPEndpoint),
		apm.WithHeaders(cfg.Telemetry.OTLPHeaders),
		apm.WithServiceName(cfg.Telemetry.ServiceName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	tel.traceProvider = tp
	tel.tracer = apm.NewTracer(cfg.Telemetry.ServiceName)
	log.Info(ctx, "tracing initialized", "provider", cfg.Telemetry.TraceProvider)

	provider := metrics.ParseProvider(cfg.Telemetry.MetricsProvider)
	providerCfg := metrics.ProviderCfg{Provider: metrics.PrometheusProvider}
	if provider == metrics.OtelCollector {
		providerCfg = metrics.NewOtelCollectorConfig(cfg.Telemetry.OTLPEndpoint, nil, metrics.InsecureOtel)
	}

	mp, err := metrics.NewMetricProvider(
		metrics.WithServiceName(cfg.Telemetry.ServiceName),
		metrics.WithProviderConfig(providerCfg),
	)
	if err != nil {
		_ = tp.Stop()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	tel.meterProvider = mp
	tel.meter = mp.Meter(boostApp.MeterName)

	if provider == metrics.PrometheusProvider {
		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		metricsCtx, stop := context.WithCancel(ctx)
		tel.stopMetrics = stop
		go func() {
			if err := metrics.ServePrometheusMetrics(metricsCtx, log, metrics.WithPort(strconv.Itoa(port))); err != nil {
				log.Warn(ctx, "prometheus metrics server stopped", "error", err)
			}
		}()
	}
	return tel, nil
}

func (t *telemetry) shutdown(ctx context.Context, log logger.LoggerInterface) {
	t.stopMetrics()
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn(ctx, "metric provider shutdown failed", "error", err)
		}
	}
	if t.traceProvider != nil {
		if err := t.traceProvider.Stop(); err != nil {
			log.Warn(ctx, "trace provider shutdown failed", "error", err)
		}
	}
}
