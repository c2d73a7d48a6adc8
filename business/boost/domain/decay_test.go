package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func TestLinearCurve(t *testing.T) {
	c := LinearCurve{Max: d("4"), Min: d("1")}

	tests := []struct {
		progress string
		want     string
	}{
		{"0", "4"},
		{"0.5", "2.5"},
		{"1", "1"},
		{"-0.3", "4"}, // clamped
		{"1.7", "1"},  // clamped
	}

	for _, tt := range tests {
		t.Run(tt.progress, func(t *testing.T) {
			got := c.Evaluate(d(tt.progress))
			if !got.Equal(d(tt.want)) {
				t.Errorf("Evaluate(%s) = %s, want %s", tt.progress, got, tt.want)
			}
		})
	}
}

func TestExponentialCurve(t *testing.T) {
	tests := []struct {
		name     string
		exponent string
		progress string
		want     string
	}{
		{"square_mid", "2", "0.5", "1.75"},  // 1 + 3*0.25
		{"square_start", "2", "0", "4"},
		{"square_end", "2", "1", "1"},
		{"sqrt_quarter", "0.5", "0.75", "2.5"}, // 1 + 3*0.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ExponentialCurve{Max: d("4"), Min: d("1"), Exponent: d(tt.exponent)}
			got := c.Evaluate(d(tt.progress)).Round(12)
			if !got.Equal(d(tt.want)) {
				t.Errorf("Evaluate(%s) = %s, want %s", tt.progress, got, tt.want)
			}
		})
	}
}

func TestStepCurve_Orders(t *testing.T) {
	cfg := BoostConfig{
		DecayFormula: FormulaStep,
		MinBoost:     nd("1"),
		Steps: []Step{
			{Threshold: d("0.2"), Boost: d("2")},
			{Threshold: d("0.8"), Boost: d("4")},
			{Threshold: d("0.5"), Boost: d("3")},
		},
	}

	closeness := NewStepCurve(cfg, StepByCloseness)
	progress := NewStepCurve(cfg, StepByProgress)

	tests := []struct {
		name     string
		curve    StepCurve
		progress string
		want     string
	}{
		// closeness = 1 - progress; highest threshold <= closeness wins
		{"closeness_center", closeness, "0", "4"},
		{"closeness_mid", closeness, "0.4", "3"},
		{"closeness_edge", closeness, "0.7", "2"},
		{"closeness_fallback", closeness, "0.9", "1"},
		// lowest threshold >= progress wins
		{"progress_near", progress, "0.1", "2"},
		{"progress_mid", progress, "0.5", "3"},
		{"progress_far", progress, "0.6", "4"},
		{"progress_fallback", progress, "0.9", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.curve.Evaluate(d(tt.progress))
			if !got.Equal(d(tt.want)) {
				t.Errorf("Evaluate(%s) = %s, want %s", tt.progress, got, tt.want)
			}
		})
	}

	// Sorting must not reorder the caller's slice.
	if !cfg.Steps[0].Threshold.Equal(d("0.2")) {
		t.Error("config steps were mutated")
	}
}

func TestNewDecayCurve_None(t *testing.T) {
	if _, ok := NewDecayCurve(BoostConfig{DecayFormula: FormulaNone}, StepByProgress); ok {
		t.Error("expected no curve for formula none")
	}
}

func TestBoostConfig_Defaults(t *testing.T) {
	tick := BoostConfig{SourceValue: SourceTick, DecaySlices: nd("10")}
	if !tick.EffectiveSliceWidth().Equal(d("1")) {
		t.Errorf("tick slice width = %s", tick.EffectiveSliceWidth())
	}
	if !tick.SlicesUp().Equal(d("10")) || !tick.SlicesDown().Equal(d("10")) {
		t.Errorf("expected shared horizon 10, got up=%s down=%s", tick.SlicesUp(), tick.SlicesDown())
	}
	if !tick.OutOfRange() {
		t.Error("out of range evaluation should default to enabled")
	}

	price := BoostConfig{SourceValue: SourcePrice, DecaySlicesUp: nd("4"), DecaySlicesDown: nd("6")}
	if !price.EffectiveSliceWidth().Equal(d("0.1")) {
		t.Errorf("price slice width = %s", price.EffectiveSliceWidth())
	}
	if !price.SlicesUp().Equal(d("4")) || !price.SlicesDown().Equal(d("6")) {
		t.Errorf("unexpected directional horizons up=%s down=%s", price.SlicesUp(), price.SlicesDown())
	}

	inactive := BoostConfig{MinBoost: nd("1")}
	if !inactive.InactiveOrMin().Equal(d("1")) {
		t.Errorf("InactiveOrMin should fall back to min")
	}
}

func TestParseEnums(t *testing.T) {
	if m, err := ParseMode(" Centered "); err != nil || m != ModeCentered {
		t.Errorf("ParseMode: %v %v", m, err)
	}
	if _, err := ParseMode("sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if f, err := ParseDecayFormula("STEP"); err != nil || f != FormulaStep {
		t.Errorf("ParseDecayFormula: %v %v", f, err)
	}
	if _, err := ParseDecayFormula("cubic"); err == nil {
		t.Error("expected error for unknown formula")
	}
	if v, err := ParseSourceValue("price"); err != nil || v != SourcePrice {
		t.Errorf("ParseSourceValue: %v %v", v, err)
	}
	if _, err := ParseSourceValue("volume"); err == nil {
		t.Error("expected error for unknown source value")
	}
}
