// Package liquidity implements the liquidity bounded context: tick math,
// position decomposition and REG valuation of pool snapshots.
package liquidity

import (
	"context"

	"github.com/fd1az/reg-voting-power/business/liquidity/app"
	liquidityDI "github.com/fd1az/reg-voting-power/business/liquidity/di"
	"github.com/fd1az/reg-voting-power/internal/asset"
	"github.com/fd1az/reg-voting-power/internal/config"
	"github.com/fd1az/reg-voting-power/internal/di"
	"github.com/fd1az/reg-voting-power/internal/logger"
	"github.com/fd1az/reg-voting-power/internal/monolith"
)

// Module implements the liquidity bounded context.
type Module struct{}

// RegisterServices registers all liquidity services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, liquidityDI.Valuator, func(sr di.ServiceRegistry) *app.Valuator {
		cfg := sr.Get(monolith.ServiceConfig).(*config.Config)
		log := sr.Get(monolith.ServiceLogger).(logger.LoggerInterface)
		registry := sr.Get(monolith.ServiceAssetRegistry).(*asset.Registry)
		return app.NewValuator(registry, cfg.Tokens.REGAddressHex(), log)
	})
	return nil
}

// Startup initializes the liquidity module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "liquidity module started", "assets", mono.AssetRegistry().Count())
	return nil
}
