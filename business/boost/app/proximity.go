package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
)

// ProximityStrategy splits a position into slices of fixed width and
// averages a per-slice multiplier that decays with the slice's distance
// from the current reference.
type ProximityStrategy struct {
	tracer Tracer
}

// NewProximityStrategy creates a ProximityStrategy. A nil tracer discards events.
func NewProximityStrategy(tracer Tracer) *ProximityStrategy {
	if tracer == nil {
		tracer = NoopTracer{}
	}
	return &ProximityStrategy{tracer: tracer}
}

// Multiplier implements Strategy.
func (s *ProximityStrategy) Multiplier(ctx context.Context, cfg domain.BoostConfig, pos domain.Position) decimal.Decimal {
	curve, _ := domain.NewDecayCurve(cfg, domain.StepByProgress)
	if pos.IsActive {
		return s.active(ctx, cfg, pos, curve)
	}
	return s.inactive(ctx, cfg, pos, curve)
}

func (s *ProximityStrategy) active(ctx context.Context, cfg domain.BoostConfig, pos domain.Position, curve domain.DecayCurve) decimal.Decimal {
	sw := cfg.EffectiveSliceWidth()
	minBoost := cfg.MinBoost.Decimal

	sum := decimal.Zero
	slices := decimal.Zero

	if pos.Upper.Valid && pos.TokenPosition != domain.TokenPositionOne {
		segSum, segSlices := s.segment(pos.Upper.Decimal.Sub(pos.Current), sw, cfg.SlicesUp(), minBoost, curve)
		sum, slices = sum.Add(segSum), slices.Add(segSlices)
	}
	if pos.Lower.Valid && pos.TokenPosition != domain.TokenPositionZero {
		segSum, segSlices := s.segment(pos.Current.Sub(pos.Lower.Decimal), sw, cfg.SlicesDown(), minBoost, curve)
		sum, slices = sum.Add(segSum), slices.Add(segSlices)
	}

	if !slices.IsPositive() {
		m := curve.Evaluate(decimal.Zero)
		s.tracer.Trace(ctx, "proximity.zero_width", "position", pos.ID, "multiplier", m)
		return m
	}

	// Weights and denominator share the same rounded slice counts.
	m := sum.DivRound(slices, domain.Precision)

	s.tracer.Trace(ctx, "proximity.active",
		"position", pos.ID,
		"slices", slices,
		"slice_width", sw,
		"multiplier", m,
	)
	return m
}

// segment sums the slice multipliers walking length units away from the
// current reference and returns that sum with the slice count it covers.
func (s *ProximityStrategy) segment(length, sw, horizon, minBoost decimal.Decimal, curve domain.DecayCurve) (decimal.Decimal, decimal.Decimal) {
	if !length.IsPositive() {
		return decimal.Zero, decimal.Zero
	}
	slices := length.DivRound(sw, domain.Precision)
	sum := sliceSum(slices, minBoost, func(i int64) (decimal.Decimal, bool) {
		idx := decimal.NewFromInt(i)
		if idx.GreaterThanOrEqual(horizon) {
			return decimal.Zero, false
		}
		return curve.Evaluate(idx.DivRound(horizon, domain.Precision)), true
	})
	return sum, slices
}

func (s *ProximityStrategy) inactive(ctx context.Context, cfg domain.BoostConfig, pos domain.Position, curve domain.DecayCurve) decimal.Decimal {
	minBoost := cfg.MinBoost.Decimal
	if !cfg.OutOfRange() {
		m := cfg.InactiveOrMin()
		s.tracer.Trace(ctx, "proximity.out_of_range_disabled", "position", pos.ID, "multiplier", m)
		return m
	}

	sw := cfg.EffectiveSliceWidth()
	lower, upper := pos.Lower.Decimal, pos.Upper.Decimal

	var distance, horizon decimal.Decimal
	if pos.Current.LessThanOrEqual(lower) {
		distance = lower.Sub(pos.Current)
		horizon = cfg.SlicesUp()
	} else {
		distance = pos.Current.Sub(upper)
		horizon = cfg.SlicesDown()
	}

	d := distance.DivRound(sw, domain.Precision)
	if d.GreaterThan(horizon.Div(two)) {
		s.tracer.Trace(ctx, "proximity.beyond_horizon", "position", pos.ID, "distance_slices", d)
		return minBoost
	}

	// Inactive liquidity decays twice as fast as active liquidity.
	progress := func(i int64) decimal.Decimal {
		return two.Mul(d.Add(decimal.NewFromInt(i))).DivRound(horizon, domain.Precision)
	}

	slices := upper.Sub(lower).DivRound(sw, domain.Precision)
	if !slices.IsPositive() {
		p := progress(0)
		if p.GreaterThanOrEqual(one) {
			return minBoost
		}
		return curve.Evaluate(p)
	}

	sum := sliceSum(slices, minBoost, func(i int64) (decimal.Decimal, bool) {
		p := progress(i)
		if p.GreaterThanOrEqual(one) {
			return decimal.Zero, false
		}
		return curve.Evaluate(p), true
	})
	m := sum.DivRound(slices, domain.Precision)

	s.tracer.Trace(ctx, "proximity.inactive",
		"position", pos.ID,
		"distance_slices", d,
		"slices", slices,
		"multiplier", m,
	)
	return m
}

// sliceSum adds value(i) for each full slice and the final partial slice
// weighted by its fraction. value must report the horizon monotonically:
// once it does, every remaining slice counts as floor, so the loop never
// runs past the horizon however many slices the range holds.
func sliceSum(slices, floor decimal.Decimal, value func(i int64) (decimal.Decimal, bool)) decimal.Decimal {
	full := slices.Floor()
	frac := slices.Sub(full)

	sum := decimal.Zero
	i := int64(0)
	for ; decimal.NewFromInt(i).LessThan(full); i++ {
		v, ok := value(i)
		if !ok {
			rest := full.Sub(decimal.NewFromInt(i)).Add(frac)
			return sum.Add(floor.Mul(rest))
		}
		sum = sum.Add(v)
	}

	if frac.IsPositive() {
		v, ok := value(i)
		if !ok {
			v = floor
		}
		sum = sum.Add(v.Mul(frac))
	}
	return sum
}
