// Package di contains dependency injection tokens for the boost context.
package di

import (
	"github.com/fd1az/reg-voting-power/business/boost/app"
	"github.com/fd1az/reg-voting-power/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Engine         = di.NewToken[*app.Engine]("boost.Engine")
	BatchEvaluator = di.NewToken[*app.BatchEvaluator]("boost.BatchEvaluator")
	Reporter       = di.NewToken[app.Reporter]("boost.Reporter")
)

// Private dependency tokens - internal to boost module
var (
	Tracer     = di.NewToken[app.Tracer]("boost:tracer")
	DexBooster = di.NewToken[*app.DexBooster]("boost:dexBooster")
)

// Helper functions for type-safe access
func GetEngine(c di.ServiceRegistry) *app.Engine {
	return di.GetToken(c, Engine)
}

func GetBatchEvaluator(c di.ServiceRegistry) *app.BatchEvaluator {
	return di.GetToken(c, BatchEvaluator)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}

func GetTracer(c di.ServiceRegistry) app.Tracer {
	return di.GetToken(c, Tracer)
}

func GetDexBooster(c di.ServiceRegistry) *app.DexBooster {
	return di.GetToken(c, DexBooster)
}
