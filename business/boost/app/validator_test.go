package app

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
)

func TestValidate(t *testing.T) {
	withCfg := func(base domain.BoostConfig, mutate func(*domain.BoostConfig)) domain.BoostConfig {
		mutate(&base)
		return base
	}
	withPos := func(base domain.Position, mutate func(*domain.Position)) domain.Position {
		mutate(&base)
		return base
	}

	active := bounded("-10", "10", "0", true)
	inactive := bounded("5", "10", "0", false)

	tests := []struct {
		name      string
		cfg       domain.BoostConfig
		pos       domain.Position
		wantParam string
	}{
		{
			name: "none_short_circuits",
			cfg:  domain.BoostConfig{DecayFormula: domain.FormulaNone, Mode: "bogus"},
			pos:  domain.Position{},
		},
		{
			name:      "unknown_source_value",
			cfg:       withCfg(centeredLinear(), func(c *domain.BoostConfig) { c.SourceValue = "volume" }),
			pos:       active,
			wantParam: "sourceValue",
		},
		{
			name:      "unknown_mode",
			cfg:       withCfg(centeredLinear(), func(c *domain.BoostConfig) { c.Mode = "sideways" }),
			pos:       active,
			wantParam: "mode",
		},
		{
			name:      "centered_missing_upper",
			cfg:       centeredLinear(),
			pos:       withPos(active, func(p *domain.Position) { p.Upper = decimal.NullDecimal{} }),
			wantParam: "lowerBound/upperBound",
		},
		{
			name: "proximity_token0_without_lower",
			cfg:  proximityLinear(),
			pos: withPos(active, func(p *domain.Position) {
				p.Lower = decimal.NullDecimal{}
				p.TokenPosition = domain.TokenPositionZero
			}),
		},
		{
			name: "proximity_token1_without_upper",
			cfg:  proximityLinear(),
			pos: withPos(active, func(p *domain.Position) {
				p.Upper = decimal.NullDecimal{}
				p.TokenPosition = domain.TokenPositionOne
			}),
		},
		{
			name: "proximity_wrong_side_absent",
			cfg:  proximityLinear(),
			pos: withPos(active, func(p *domain.Position) {
				p.Upper = decimal.NullDecimal{}
				p.TokenPosition = domain.TokenPositionZero
			}),
			wantParam: "upperBound",
		},
		{
			name: "proximity_inactive_needs_both_bounds",
			cfg:  proximityLinear(),
			pos: withPos(inactive, func(p *domain.Position) {
				p.Lower = decimal.NullDecimal{}
				p.TokenPosition = domain.TokenPositionZero
			}),
			wantParam: "lowerBound",
		},
		{
			name: "proximity_missing_slices",
			cfg: withCfg(proximityLinear(), func(c *domain.BoostConfig) {
				c.DecaySlices = decimal.NullDecimal{}
				c.DecaySlicesUp = nd("5")
			}),
			pos:       active,
			wantParam: "decaySlices",
		},
		{
			name: "proximity_directional_slices",
			cfg: withCfg(proximityLinear(), func(c *domain.BoostConfig) {
				c.DecaySlices = decimal.NullDecimal{}
				c.DecaySlicesUp = nd("5")
				c.DecaySlicesDown = nd("8")
			}),
			pos: active,
		},
		{
			name:      "proximity_slices_over_cap",
			cfg:       withCfg(proximityLinear(), func(c *domain.BoostConfig) { c.DecaySlices = nd("1e12") }),
			pos:       bounded("-887272", "887272", "0", true),
			wantParam: "decaySlices",
		},
		{
			name: "proximity_slices_down_over_cap",
			cfg: withCfg(proximityLinear(), func(c *domain.BoostConfig) {
				c.DecaySlicesUp = nd("100")
				c.DecaySlicesDown = nd("1000001")
			}),
			pos:       active,
			wantParam: "decaySlicesDown",
		},
		{
			name: "proximity_slices_at_cap",
			cfg:  withCfg(proximityLinear(), func(c *domain.BoostConfig) { c.DecaySlices = nd("1000000") }),
			pos:  active,
		},
		{
			name:      "linear_missing_max",
			cfg:       withCfg(centeredLinear(), func(c *domain.BoostConfig) { c.MaxBoost = decimal.NullDecimal{} }),
			pos:       active,
			wantParam: "maxBoost",
		},
		{
			name:      "linear_zero_min",
			cfg:       withCfg(centeredLinear(), func(c *domain.BoostConfig) { c.MinBoost = nd("0") }),
			pos:       active,
			wantParam: "minBoost",
		},
		{
			name:      "exponential_missing_exponent",
			cfg:       withCfg(centeredLinear(), func(c *domain.BoostConfig) { c.DecayFormula = domain.FormulaExponential }),
			pos:       active,
			wantParam: "exponent",
		},
		{
			name: "step_empty",
			cfg: withCfg(centeredLinear(), func(c *domain.BoostConfig) {
				c.DecayFormula = domain.FormulaStep
			}),
			pos:       active,
			wantParam: "steps",
		},
		{
			name: "step_threshold_out_of_range",
			cfg: withCfg(centeredLinear(), func(c *domain.BoostConfig) {
				c.DecayFormula = domain.FormulaStep
				c.Steps = []domain.Step{{Threshold: d("0.5"), Boost: d("2")}, {Threshold: d("1.5"), Boost: d("3")}}
			}),
			pos:       active,
			wantParam: "steps[1].threshold",
		},
		{
			name: "step_without_min",
			cfg: withCfg(centeredLinear(), func(c *domain.BoostConfig) {
				c.DecayFormula = domain.FormulaStep
				c.Steps = []domain.Step{{Threshold: d("0.5"), Boost: d("2")}}
				c.MinBoost = decimal.NullDecimal{}
			}),
			pos:       active,
			wantParam: "minBoost",
		},
		{
			name: "step_valid_without_max",
			cfg: withCfg(centeredLinear(), func(c *domain.BoostConfig) {
				c.DecayFormula = domain.FormulaStep
				c.Steps = []domain.Step{{Threshold: d("0.5"), Boost: d("2")}}
				c.MaxBoost = decimal.NullDecimal{}
			}),
			pos: active,
		},
		{
			name:      "unknown_formula",
			cfg:       withCfg(centeredLinear(), func(c *domain.BoostConfig) { c.DecayFormula = "cubic" }),
			pos:       active,
			wantParam: "decayFormula",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg, tt.pos)
			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cve *domain.ConfigValidationError
			if !errors.As(err, &cve) {
				t.Fatalf("expected ConfigValidationError, got %v", err)
			}
			if cve.Parameter != tt.wantParam {
				t.Errorf("parameter = %q, want %q", cve.Parameter, tt.wantParam)
			}
		})
	}
}
