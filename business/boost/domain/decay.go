package domain

import (
	"github.com/shopspring/decimal"
)

// DecayCurve maps decay progress in [0, 1] to a multiplier. Progress 0 is
// the most rewarded point (adjacent to the price, or dead center) and
// progress 1 the least.
type DecayCurve interface {
	Evaluate(progress decimal.Decimal) decimal.Decimal
}

var (
	one  = decimal.NewFromInt(1)
	zero = decimal.Zero
)

func clampUnit(p decimal.Decimal) decimal.Decimal {
	if p.LessThan(zero) {
		return zero
	}
	if p.GreaterThan(one) {
		return one
	}
	return p
}

// LinearCurve falls linearly from Max at progress 0 to Min at progress 1.
type LinearCurve struct {
	Max decimal.Decimal
	Min decimal.Decimal
}

func (c LinearCurve) Evaluate(progress decimal.Decimal) decimal.Decimal {
	p := clampUnit(progress)
	return c.Min.Add(c.Max.Sub(c.Min).Mul(one.Sub(p)))
}

// ExponentialCurve evaluates Min + (Max-Min) * (1-progress)^Exponent.
type ExponentialCurve struct {
	Max      decimal.Decimal
	Min      decimal.Decimal
	Exponent decimal.Decimal
}

func (c ExponentialCurve) Evaluate(progress decimal.Decimal) decimal.Decimal {
	base := one.Sub(clampUnit(progress))
	return c.Min.Add(c.Max.Sub(c.Min).Mul(powUnit(base, c.Exponent)))
}

// powUnit raises base in [0, 1] to a positive exponent.
func powUnit(base, exp decimal.Decimal) decimal.Decimal {
	switch {
	case base.IsZero():
		return zero
	case base.Equal(one):
		return one
	case exp.IsInteger() && exp.LessThanOrEqual(decimal.NewFromInt(1<<20)):
		r, err := base.PowInt32(int32(exp.IntPart()))
		if err == nil {
			return r.Round(Precision)
		}
	}

	// Cannot fail for base in (0, 1) and exponent > 0.
	r, err := base.PowWithPrecision(exp, Precision)
	if err != nil {
		return zero
	}
	return r.Round(Precision)
}

// StepOrder selects how a StepCurve matches thresholds.
type StepOrder int

const (
	// StepByCloseness matches the highest threshold <= 1-progress.
	StepByCloseness StepOrder = iota
	// StepByProgress matches the lowest threshold >= progress.
	StepByProgress
)

// StepCurve returns the boost of the first matching step, or Fallback.
type StepCurve struct {
	steps    []Step
	order    StepOrder
	Fallback decimal.Decimal
}

// NewStepCurve sorts steps for order: descending thresholds for
// StepByCloseness, ascending for StepByProgress.
func NewStepCurve(cfg BoostConfig, order StepOrder) StepCurve {
	return StepCurve{
		steps:    cfg.SortedSteps(order == StepByCloseness),
		order:    order,
		Fallback: cfg.MinBoost.Decimal,
	}
}

func (c StepCurve) Evaluate(progress decimal.Decimal) decimal.Decimal {
	p := clampUnit(progress)
	closeness := one.Sub(p)

	for _, s := range c.steps {
		switch c.order {
		case StepByCloseness:
			if s.Threshold.LessThanOrEqual(closeness) {
				return s.Boost
			}
		case StepByProgress:
			if p.LessThanOrEqual(s.Threshold) {
				return s.Boost
			}
		}
	}
	return c.Fallback
}

// NewDecayCurve builds the curve for cfg.DecayFormula. It returns false for
// FormulaNone and unknown formulas. Callers validate cfg first.
func NewDecayCurve(cfg BoostConfig, order StepOrder) (DecayCurve, bool) {
	switch cfg.DecayFormula {
	case FormulaLinear:
		return LinearCurve{Max: cfg.MaxBoost.Decimal, Min: cfg.MinBoost.Decimal}, true
	case FormulaExponential:
		return ExponentialCurve{Max: cfg.MaxBoost.Decimal, Min: cfg.MinBoost.Decimal, Exponent: cfg.Exponent.Decimal}, true
	case FormulaStep:
		return NewStepCurve(cfg, order), true
	}
	return nil, false
}
