// Package domain contains the boost configuration model, decay curves and
// position shape consumed by the boost engine.
package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/internal/apperror"
)

// Precision is the number of fractional digits kept by divisions in the engine.
const Precision = 32

// MaxDecaySlices caps every decay horizon. Proximity evaluation visits at
// most one slice per horizon step.
const MaxDecaySlices = 1_000_000

// Mode selects the boost strategy.
type Mode string

const (
	ModeCentered  Mode = "centered"
	ModeProximity Mode = "proximity"
)

// DecayFormula selects how the multiplier falls from maxBoost to minBoost.
type DecayFormula string

const (
	FormulaLinear      DecayFormula = "linear"
	FormulaExponential DecayFormula = "exponential"
	FormulaStep        DecayFormula = "step"
	FormulaNone        DecayFormula = "none"
)

// SourceValue selects the unit of position bounds.
type SourceValue string

const (
	SourceTick  SourceValue = "tick"
	SourcePrice SourceValue = "price"
)

// ParseMode parses a boost mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCentered, ModeProximity:
		return m, nil
	}
	return "", apperror.Validation(apperror.CodeInvalidBoostMode, fmt.Sprintf("%q", s))
}

// ParseDecayFormula parses a decay formula name.
func ParseDecayFormula(s string) (DecayFormula, error) {
	switch f := DecayFormula(strings.ToLower(strings.TrimSpace(s))); f {
	case FormulaLinear, FormulaExponential, FormulaStep, FormulaNone:
		return f, nil
	}
	return "", apperror.Validation(apperror.CodeInvalidDecayFormula, fmt.Sprintf("%q", s))
}

// ParseSourceValue parses a bound unit name.
func ParseSourceValue(s string) (SourceValue, error) {
	switch v := SourceValue(strings.ToLower(strings.TrimSpace(s))); v {
	case SourceTick, SourcePrice:
		return v, nil
	}
	return "", apperror.Validation(apperror.CodeInvalidSourceValue, fmt.Sprintf("%q", s))
}

// Step is one threshold/multiplier pair of a step decay. Thresholds lie in [0, 1].
type Step struct {
	Threshold decimal.Decimal
	Boost     decimal.Decimal
}

// BoostConfig parameterizes the concentrated-liquidity boost. Optional
// numeric parameters are NullDecimal so that absence can be reported.
type BoostConfig struct {
	SourceValue  SourceValue
	Mode         Mode
	DecayFormula DecayFormula

	MaxBoost      decimal.NullDecimal
	MinBoost      decimal.NullDecimal
	InactiveBoost decimal.NullDecimal
	Exponent      decimal.NullDecimal

	// centered
	RangeWidthFactor decimal.NullDecimal

	// proximity
	DecaySlices       decimal.NullDecimal
	DecaySlicesUp     decimal.NullDecimal
	DecaySlicesDown   decimal.NullDecimal
	SliceWidth        decimal.NullDecimal
	OutOfRangeEnabled *bool

	Steps []Step
}

var (
	defaultTickSliceWidth  = decimal.NewFromInt(1)
	defaultPriceSliceWidth = decimal.RequireFromString("0.1")
)

// EffectiveSliceWidth returns SliceWidth, defaulting to 1 for tick bounds
// and 0.1 for price bounds.
func (c BoostConfig) EffectiveSliceWidth() decimal.Decimal {
	if c.SliceWidth.Valid && c.SliceWidth.Decimal.IsPositive() {
		return c.SliceWidth.Decimal
	}
	if c.SourceValue == SourcePrice {
		return defaultPriceSliceWidth
	}
	return defaultTickSliceWidth
}

// SlicesUp returns the decay horizon above the current price.
func (c BoostConfig) SlicesUp() decimal.Decimal {
	return pickSlices(c.DecaySlicesUp, c.DecaySlices)
}

// SlicesDown returns the decay horizon below the current price.
func (c BoostConfig) SlicesDown() decimal.Decimal {
	return pickSlices(c.DecaySlicesDown, c.DecaySlices)
}

func pickSlices(specific, shared decimal.NullDecimal) decimal.Decimal {
	if specific.Valid && specific.Decimal.IsPositive() {
		return specific.Decimal
	}
	if shared.Valid {
		return shared.Decimal
	}
	return decimal.Zero
}

// OutOfRange reports whether inactive proximity positions are evaluated. Defaults to true.
func (c BoostConfig) OutOfRange() bool {
	return c.OutOfRangeEnabled == nil || *c.OutOfRangeEnabled
}

// InactiveOrMin returns InactiveBoost, falling back to MinBoost.
func (c BoostConfig) InactiveOrMin() decimal.Decimal {
	if c.InactiveBoost.Valid {
		return c.InactiveBoost.Decimal
	}
	return c.MinBoost.Decimal
}

// SortedSteps returns a copy of Steps ordered by threshold.
func (c BoostConfig) SortedSteps(descending bool) []Step {
	steps := make([]Step, len(c.Steps))
	copy(steps, c.Steps)
	sort.SliceStable(steps, func(i, j int) bool {
		if descending {
			return steps[i].Threshold.GreaterThan(steps[j].Threshold)
		}
		return steps[i].Threshold.LessThan(steps[j].Threshold)
	})
	return steps
}

// WildcardSymbol matches any token in DEX boost tables.
const WildcardSymbol = "*"

// DexConfigKind discriminates DexBoostConfig.
type DexConfigKind int

const (
	KindLegacy DexConfigKind = iota + 1
	KindStructured
)

func (k DexConfigKind) String() string {
	switch k {
	case KindLegacy:
		return "legacy"
	case KindStructured:
		return "structured"
	}
	return "unknown"
}

// LegacyBoost pairs token symbols with flat multipliers.
type LegacyBoost struct {
	Tokens  []string
	Factors []decimal.Decimal
}

// Factor returns the multiplier for symbol, then for the wildcard, else 1.
func (l LegacyBoost) Factor(symbol string) decimal.Decimal {
	idx := indexFold(l.Tokens, symbol)
	if idx < 0 {
		idx = indexFold(l.Tokens, WildcardSymbol)
	}
	if idx < 0 {
		return decimal.NewFromInt(1)
	}
	return l.Factors[idx]
}

func indexFold(tokens []string, symbol string) int {
	for i, t := range tokens {
		if strings.EqualFold(t, symbol) {
			return i
		}
	}
	return -1
}

// StructuredBoost carries per-symbol base multipliers and an optional
// concentrated-liquidity boost.
type StructuredBoost struct {
	Default map[string]decimal.Decimal
	V3      *BoostConfig
}

// BaseBoost returns the non-zero multiplier for symbol, then for the wildcard, else 1.
func (s StructuredBoost) BaseBoost(symbol string) decimal.Decimal {
	if f, ok := s.Default[strings.ToUpper(symbol)]; ok && !f.IsZero() {
		return f
	}
	if f, ok := s.Default[WildcardSymbol]; ok && !f.IsZero() {
		return f
	}
	return decimal.NewFromInt(1)
}

// DexBoostConfig is the per-DEX boost setting: either a legacy token/factor
// table or a structured config. The variant is fixed at construction.
type DexBoostConfig struct {
	kind       DexConfigKind
	legacy     LegacyBoost
	structured StructuredBoost
}

// NewLegacyDexConfig builds the legacy variant.
func NewLegacyDexConfig(tokens []string, factors []decimal.Decimal) (DexBoostConfig, error) {
	if len(tokens) != len(factors) {
		return DexBoostConfig{}, apperror.Validation(apperror.CodeConfigurationError,
			fmt.Sprintf("legacy boost: %d tokens vs %d factors", len(tokens), len(factors)))
	}
	return DexBoostConfig{
		kind: KindLegacy,
		legacy: LegacyBoost{
			Tokens:  append([]string(nil), tokens...),
			Factors: append([]decimal.Decimal(nil), factors...),
		},
	}, nil
}

// NewStructuredDexConfig builds the structured variant. Default keys are
// upper-cased symbols; v3 may be nil.
func NewStructuredDexConfig(defaults map[string]decimal.Decimal, v3 *BoostConfig) DexBoostConfig {
	d := make(map[string]decimal.Decimal, len(defaults))
	for k, v := range defaults {
		d[strings.ToUpper(k)] = v
	}
	return DexBoostConfig{
		kind:       KindStructured,
		structured: StructuredBoost{Default: d, V3: v3},
	}
}

// Kind returns the variant.
func (c DexBoostConfig) Kind() DexConfigKind {
	return c.kind
}

// Legacy returns the legacy table when c is the legacy variant.
func (c DexBoostConfig) Legacy() (LegacyBoost, bool) {
	return c.legacy, c.kind == KindLegacy
}

// Structured returns the structured config when c is the structured variant.
func (c DexBoostConfig) Structured() (StructuredBoost, bool) {
	return c.structured, c.kind == KindStructured
}
