package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
)

var (
	one  = decimal.NewFromInt(1)
	two  = decimal.NewFromInt(2)
	half = decimal.RequireFromString("0.5")
)

// CenteredStrategy rewards active positions whose range is centered on the
// current reference, scaled by a range-width factor.
type CenteredStrategy struct {
	tracer Tracer
}

// NewCenteredStrategy creates a CenteredStrategy. A nil tracer discards events.
func NewCenteredStrategy(tracer Tracer) *CenteredStrategy {
	if tracer == nil {
		tracer = NoopTracer{}
	}
	return &CenteredStrategy{tracer: tracer}
}

// Multiplier implements Strategy.
func (s *CenteredStrategy) Multiplier(ctx context.Context, cfg domain.BoostConfig, pos domain.Position) decimal.Decimal {
	if !pos.IsActive {
		m := cfg.InactiveOrMin()
		s.tracer.Trace(ctx, "centered.inactive", "position", pos.ID, "multiplier", m)
		return m
	}

	curve, _ := domain.NewDecayCurve(cfg, domain.StepByCloseness)
	lower, upper := pos.Lower.Decimal, pos.Upper.Decimal
	width := upper.Sub(lower)

	if width.IsZero() {
		if !pos.Current.Equal(lower) {
			return cfg.MinBoost.Decimal
		}
		if cfg.MaxBoost.Valid {
			return cfg.MaxBoost.Decimal
		}
		return curve.Evaluate(decimal.Zero)
	}

	rel := pos.Current.Sub(lower).DivRound(width, domain.Precision)
	centeredness := one.Sub(rel.Sub(half).Abs().Mul(two))
	if centeredness.IsNegative() {
		centeredness = decimal.Zero
	}

	base := curve.Evaluate(one.Sub(centeredness))
	widthBoost := rangeWidthBoost(cfg.RangeWidthFactor, width)
	m := base.Mul(widthBoost)

	s.tracer.Trace(ctx, "centered.active",
		"position", pos.ID,
		"centeredness", centeredness,
		"base", base,
		"range_width_boost", widthBoost,
		"multiplier", m,
	)
	return m
}

// rangeWidthBoost is max(1, width/f) for f >= 0 and max(1, |f|/width) for
// negative f. An absent or zero factor yields 1.
func rangeWidthBoost(factor decimal.NullDecimal, width decimal.Decimal) decimal.Decimal {
	if !factor.Valid || factor.Decimal.IsZero() {
		return one
	}
	f := factor.Decimal

	var r decimal.Decimal
	if f.IsPositive() {
		r = width.DivRound(f, domain.Precision)
	} else {
		r = f.Abs().DivRound(width, domain.Precision)
	}
	return decimal.Max(one, r)
}
