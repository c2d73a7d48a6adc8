// Package app contains the boost engine, its strategies and the services
// that apply DEX boost settings to valued liquidity legs.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
)

// Tracer receives diagnostic events emitted while a multiplier is computed.
type Tracer interface {
	Trace(ctx context.Context, event string, keyvals ...any)
}

// NoopTracer discards all events.
type NoopTracer struct{}

// Trace implements Tracer.
func (NoopTracer) Trace(context.Context, string, ...any) {}

// Strategy computes a multiplier for a validated config and position.
type Strategy interface {
	Multiplier(ctx context.Context, cfg domain.BoostConfig, pos domain.Position) decimal.Decimal
}

// Reporter renders evaluated legs.
type Reporter interface {
	Report(ctx context.Context, results []LegResult) error
}
