// Package boost implements the boost bounded context: concentrated-liquidity
// boost multipliers and their application to valued liquidity legs.
package boost

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/reg-voting-power/business/boost/app"
	boostDI "github.com/fd1az/reg-voting-power/business/boost/di"
	"github.com/fd1az/reg-voting-power/business/boost/infra"
	"github.com/fd1az/reg-voting-power/internal/apm"
	"github.com/fd1az/reg-voting-power/internal/config"
	"github.com/fd1az/reg-voting-power/internal/di"
	"github.com/fd1az/reg-voting-power/internal/logger"
	"github.com/fd1az/reg-voting-power/internal/monolith"
)

// Module implements the boost bounded context. The container must provide
// monolith.ServiceMeter and monolith.ServiceTracer.
type Module struct{}

// RegisterServices registers all boost services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register Tracer (private - injected into both strategies)
	di.RegisterToken(c, boostDI.Tracer, func(sr di.ServiceRegistry) app.Tracer {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)

		logTracer := infra.NewLogTracer(log)
		if !cfg.Telemetry.Enabled {
			return logTracer
		}
		return infra.NewSpanTracer(sr.Get(monolith.ServiceTracer).(apm.Tracer), logTracer)
	})

	// Register Engine (public)
	di.RegisterToken(c, boostDI.Engine, func(sr di.ServiceRegistry) *app.Engine {
		meter := sr.Get(monolith.ServiceMeter).(metric.Meter)

		engine, err := app.NewEngine(
			app.WithTracer(boostDI.GetTracer(sr)),
			app.WithMeter(meter),
		)
		if err != nil {
			panic("failed to create boost engine: " + err.Error())
		}
		return engine
	})

	// Register DexBooster (private - resolved DEX settings)
	di.RegisterToken(c, boostDI.DexBooster, func(sr di.ServiceRegistry) *app.DexBooster {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)

		dexs, err := app.ResolveDexConfigs(cfg.Boost.Dexs)
		if err != nil {
			panic("failed to resolve dex boost settings: " + err.Error())
		}
		return app.NewDexBooster(boostDI.GetEngine(sr), dexs, cfg.Tokens.REGSymbol, log)
	})

	// Register BatchEvaluator (public)
	di.RegisterToken(c, boostDI.BatchEvaluator, func(sr di.ServiceRegistry) *app.BatchEvaluator {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		return app.NewBatchEvaluator(boostDI.GetDexBooster(sr), cfg.Evaluation.Workers, log)
	})

	// Register Reporter (public)
	di.RegisterToken(c, boostDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		if cfg.Evaluation.Format == config.FormatConsole {
			return infra.NewConsoleReporter(nil)
		}
		return infra.NewJSONReporter(nil)
	})

	return nil
}

// Startup checks the DEX boost settings so that a bad config fails with an
// error instead of a panic on first use.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	dexs, err := app.ResolveDexConfigs(mono.Config().Boost.Dexs)
	if err != nil {
		return fmt.Errorf("boost module: %w", err)
	}

	for name, cfg := range dexs {
		log.Debug(ctx, "dex boost settings resolved", "dex", name, "kind", cfg.Kind().String())
	}
	log.Info(ctx, "boost module started", "dexs", len(dexs))
	return nil
}
