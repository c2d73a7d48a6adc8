package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
	"github.com/fd1az/reg-voting-power/internal/apperror"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func centeredLinear() domain.BoostConfig {
	return domain.BoostConfig{
		SourceValue:  domain.SourceTick,
		Mode:         domain.ModeCentered,
		DecayFormula: domain.FormulaLinear,
		MaxBoost:     nd("4"),
		MinBoost:     nd("1"),
	}
}

func proximityLinear() domain.BoostConfig {
	return domain.BoostConfig{
		SourceValue:  domain.SourceTick,
		Mode:         domain.ModeProximity,
		DecayFormula: domain.FormulaLinear,
		MaxBoost:     nd("5"),
		MinBoost:     nd("1"),
		DecaySlices:  nd("10"),
		SliceWidth:   nd("1"),
	}
}

func bounded(lower, upper, current string, active bool) domain.Position {
	return domain.Position{
		ID:        "1",
		Lower:     nd(lower),
		Upper:     nd(upper),
		Current:   d(current),
		Liquidity: d("1000"),
		IsActive:  active,
	}
}

func TestEngine_Scenarios(t *testing.T) {
	engine := newTestEngine(t)

	malformed := domain.BoostConfig{
		SourceValue:  "volume",
		Mode:         "sideways",
		DecayFormula: domain.FormulaNone,
		MaxBoost:     nd("-3"),
	}

	tests := []struct {
		name string
		cfg  domain.BoostConfig
		pos  domain.Position
		want string
	}{
		{"centered_midpoint", centeredLinear(), bounded("-100", "100", "0", true), "4"},
		{"centered_at_upper", centeredLinear(), bounded("-100", "100", "100", true), "1"},
		{"proximity_symmetric", proximityLinear(), bounded("-10", "10", "0", true), "3.2"},
		{"none_malformed", malformed, domain.Position{}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Multiplier(context.Background(), tt.cfg, tt.pos)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("Multiplier() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEngine_CenteredMissingBound(t *testing.T) {
	engine := newTestEngine(t)

	pos := bounded("0", "100", "0", true)
	pos.Lower = decimal.NullDecimal{}

	_, err := engine.Multiplier(context.Background(), centeredLinear(), pos)
	var cve *domain.ConfigValidationError
	if !errors.As(err, &cve) {
		t.Fatalf("expected ConfigValidationError, got %v", err)
	}
	if cve.Parameter != "lowerBound/upperBound" {
		t.Errorf("expected parameter naming the bounds, got %q", cve.Parameter)
	}
	if apperror.GetCode(err) != apperror.CodeConfigValidation {
		t.Errorf("expected code %s, got %s", apperror.CodeConfigValidation, apperror.GetCode(err))
	}
}

func TestEngine_PositionInvariant(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Multiplier(context.Background(), centeredLinear(), bounded("-100", "100", "150", true))
	if apperror.GetCode(err) != apperror.CodePositionInvariant {
		t.Fatalf("expected %s, got %v", apperror.CodePositionInvariant, err)
	}

	_, err = engine.Multiplier(context.Background(), centeredLinear(), bounded("100", "-100", "0", false))
	if apperror.GetCode(err) != apperror.CodePositionInvariant {
		t.Fatalf("expected %s for inverted bounds, got %v", apperror.CodePositionInvariant, err)
	}
}

func TestEngine_Apply(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.Apply(context.Background(), d("10"), bounded("-100", "100", "0", true), centeredLinear(), d("0.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Multiplier.Equal(d("4")) {
		t.Errorf("multiplier = %s, want 4", res.Multiplier)
	}
	if !res.BoostedBalance.Equal(d("20")) {
		t.Errorf("boosted = %s, want 20", res.BoostedBalance)
	}

	none := domain.BoostConfig{DecayFormula: domain.FormulaNone}
	res, err = engine.Apply(context.Background(), d("10"), domain.Position{}, none, d("3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.BoostedBalance.Equal(d("30")) {
		t.Errorf("boosted = %s, want 30", res.BoostedBalance)
	}
}

func TestEngine_ApplyStringIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	cfg := proximityLinear()
	pos := bounded("-7.3", "12.9", "1.4", true)

	first, err := engine.ApplyString(context.Background(), "123.456789", pos, cfg, d("1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.ApplyString(context.Background(), "123.456789", pos, cfg, d("1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected identical output, got %s and %s", first, second)
	}

	if _, err := engine.ApplyString(context.Background(), "not-a-number", pos, cfg, d("1")); apperror.GetCode(err) != apperror.CodeInvalidFormat {
		t.Errorf("expected %s for malformed balance, got %v", apperror.CodeInvalidFormat, err)
	}
}

type recordingTracer struct {
	events []string
}

func (r *recordingTracer) Trace(_ context.Context, event string, _ ...any) {
	r.events = append(r.events, event)
}

func TestEngine_TracesThroughInjectedTracer(t *testing.T) {
	tracer := &recordingTracer{}
	engine, err := NewEngine(WithTracer(tracer))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := engine.Apply(context.Background(), d("1"), bounded("-100", "100", "0", true), centeredLinear(), d("1")); err != nil {
		t.Fatal(err)
	}

	want := []string{"centered.active", "boost.applied"}
	if len(tracer.events) != len(want) {
		t.Fatalf("events = %v, want %v", tracer.events, want)
	}
	for i := range want {
		if tracer.events[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, tracer.events[i], want[i])
		}
	}
}

func BenchmarkEngine_ProximityWide(b *testing.B) {
	engine, _ := NewEngine()
	cfg := proximityLinear()
	cfg.DecaySlices = nd("500")
	pos := bounded("-20000", "20000", "150", true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Multiplier(context.Background(), cfg, pos)
	}
}
