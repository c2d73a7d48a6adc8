package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
	"github.com/fd1az/reg-voting-power/internal/apperror"
)

// Engine validates a boost config against a position, dispatches to the
// strategy selected by the config mode and multiplies the result into a
// balance. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	tracer      Tracer
	centered    Strategy
	proximity   Strategy
	instruments *instruments
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	tracer Tracer
	meter  metric.Meter
}

// WithTracer sets the diagnostic tracer passed to both strategies.
func WithTracer(t Tracer) EngineOption {
	return func(o *engineOptions) {
		o.tracer = t
	}
}

// WithMeter records evaluation metrics on meter.
func WithMeter(m metric.Meter) EngineOption {
	return func(o *engineOptions) {
		o.meter = m
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	o := engineOptions{tracer: NoopTracer{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = NoopTracer{}
	}

	inst, err := newInstruments(o.meter)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInternalError, "boost metrics", err)
	}

	return &Engine{
		tracer:      o.tracer,
		centered:    NewCenteredStrategy(o.tracer),
		proximity:   NewProximityStrategy(o.tracer),
		instruments: inst,
	}, nil
}

// Multiplier returns the boost multiplier for pos under cfg. Formula none
// yields 1 without looking at any other field.
func (e *Engine) Multiplier(ctx context.Context, cfg domain.BoostConfig, pos domain.Position) (decimal.Decimal, error) {
	if cfg.DecayFormula == domain.FormulaNone {
		e.tracer.Trace(ctx, "boost.none", "position", pos.ID)
		e.instruments.recordEvaluation(ctx, cfg, one)
		return one, nil
	}

	if err := Validate(cfg, pos); err != nil {
		e.instruments.recordFailure(ctx, cfg)
		e.tracer.Trace(ctx, "boost.invalid_config", "position", pos.ID, "error", err)
		return decimal.Zero, err
	}
	if err := pos.CheckInvariants(); err != nil {
		e.instruments.recordFailure(ctx, cfg)
		e.tracer.Trace(ctx, "boost.invalid_position", "position", pos.ID, "error", err)
		return decimal.Zero, err
	}

	var m decimal.Decimal
	switch cfg.Mode {
	case domain.ModeCentered:
		m = e.centered.Multiplier(ctx, cfg, pos)
	case domain.ModeProximity:
		m = e.proximity.Multiplier(ctx, cfg, pos)
	}

	e.instruments.recordEvaluation(ctx, cfg, m)
	return m, nil
}

// Apply computes balance × multiplier × crossTokenFactor.
func (e *Engine) Apply(
	ctx context.Context,
	balance decimal.Decimal,
	pos domain.Position,
	cfg domain.BoostConfig,
	crossTokenFactor decimal.Decimal,
) (domain.BoostResult, error) {
	m, err := e.Multiplier(ctx, cfg, pos)
	if err != nil {
		return domain.BoostResult{}, err
	}

	boosted := balance.Mul(m).Mul(crossTokenFactor)
	e.tracer.Trace(ctx, "boost.applied",
		"position", pos.ID,
		"balance", balance,
		"multiplier", m,
		"cross_token_factor", crossTokenFactor,
		"boosted", boosted,
	)
	return domain.BoostResult{Multiplier: m, BoostedBalance: boosted}, nil
}

// ApplyString is Apply for decimal-string balances.
func (e *Engine) ApplyString(
	ctx context.Context,
	balance string,
	pos domain.Position,
	cfg domain.BoostConfig,
	crossTokenFactor decimal.Decimal,
) (string, error) {
	b, err := decimal.NewFromString(balance)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidFormat,
			apperror.WithContext(fmt.Sprintf("balance %q", balance)),
			apperror.WithCause(err))
	}

	res, err := e.Apply(ctx, b, pos, cfg, crossTokenFactor)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}
