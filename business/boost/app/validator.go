package app

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
)

// Validate checks cfg against pos for the selected mode and decay formula.
// It returns the first violated rule as a *domain.ConfigValidationError.
// Configs with formula none are always valid.
func Validate(cfg domain.BoostConfig, pos domain.Position) error {
	if cfg.DecayFormula == domain.FormulaNone {
		return nil
	}

	fail := func(param, reason string) error {
		return domain.NewConfigValidationError(param, cfg.Mode, cfg.DecayFormula, reason)
	}

	switch cfg.SourceValue {
	case domain.SourceTick, domain.SourcePrice:
	default:
		return fail("sourceValue", fmt.Sprintf("unrecognized unit %q", cfg.SourceValue))
	}

	switch cfg.Mode {
	case domain.ModeCentered:
		if !pos.Lower.Valid || !pos.Upper.Valid {
			return fail("lowerBound/upperBound", "centered mode requires both bounds")
		}
	case domain.ModeProximity:
		if err := validateProximity(cfg, pos, fail); err != nil {
			return err
		}
	default:
		return fail("mode", fmt.Sprintf("unrecognized mode %q", cfg.Mode))
	}

	switch cfg.DecayFormula {
	case domain.FormulaLinear, domain.FormulaExponential:
		if !positive(cfg.MaxBoost) {
			return fail("maxBoost", "must be present and > 0")
		}
		if !positive(cfg.MinBoost) {
			return fail("minBoost", "must be present and > 0")
		}
		if cfg.DecayFormula == domain.FormulaExponential && !positive(cfg.Exponent) {
			return fail("exponent", "must be present and > 0")
		}
	case domain.FormulaStep:
		if len(cfg.Steps) == 0 {
			return fail("steps", "must be a non-empty list")
		}
		for i, s := range cfg.Steps {
			if s.Threshold.IsNegative() || s.Threshold.GreaterThan(decimal.NewFromInt(1)) {
				return fail(fmt.Sprintf("steps[%d].threshold", i), "must lie in [0, 1]")
			}
		}
		if !positive(cfg.MinBoost) {
			return fail("minBoost", "must be present and > 0")
		}
	default:
		return fail("decayFormula", fmt.Sprintf("unrecognized formula %q", cfg.DecayFormula))
	}

	return nil
}

func validateProximity(cfg domain.BoostConfig, pos domain.Position, fail func(string, string) error) error {
	switch {
	case !pos.Lower.Valid && !pos.Upper.Valid:
		return fail("lowerBound/upperBound", "at most one bound may be absent")
	case !pos.Lower.Valid:
		if !pos.IsActive || pos.TokenPosition != domain.TokenPositionZero {
			return fail("lowerBound", "may only be absent for an active token0 position")
		}
	case !pos.Upper.Valid:
		if !pos.IsActive || pos.TokenPosition != domain.TokenPositionOne {
			return fail("upperBound", "may only be absent for an active token1 position")
		}
	}

	shared := positive(cfg.DecaySlices)
	directional := positive(cfg.DecaySlicesUp) && positive(cfg.DecaySlicesDown)
	if !shared && !directional {
		return fail("decaySlices", "decaySlices or both decaySlicesUp and decaySlicesDown must be > 0")
	}

	for _, h := range []struct {
		param string
		value decimal.NullDecimal
	}{
		{"decaySlices", cfg.DecaySlices},
		{"decaySlicesUp", cfg.DecaySlicesUp},
		{"decaySlicesDown", cfg.DecaySlicesDown},
	} {
		if h.value.Valid && h.value.Decimal.GreaterThan(maxDecaySlices) {
			return fail(h.param, fmt.Sprintf("must be <= %d", domain.MaxDecaySlices))
		}
	}
	return nil
}

var maxDecaySlices = decimal.NewFromInt(domain.MaxDecaySlices)

func positive(v decimal.NullDecimal) bool {
	return v.Valid && v.Decimal.IsPositive()
}
