package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
	liquidityApp "github.com/fd1az/reg-voting-power/business/liquidity/app"
	liquidityDomain "github.com/fd1az/reg-voting-power/business/liquidity/domain"
	"github.com/fd1az/reg-voting-power/internal/logger"
)

// BoostKind names how a leg's boost was resolved.
type BoostKind string

const (
	BoostLegacy  BoostKind = "legacy"
	BoostDefault BoostKind = "default"
	BoostV3      BoostKind = "v3"
)

// LegResult is a boosted leg.
type LegResult struct {
	Leg              liquidityApp.Leg
	Kind             BoostKind
	Multiplier       decimal.Decimal
	CrossTokenFactor decimal.Decimal
	BoostedBalance   decimal.Decimal
}

// DexBooster applies the boost settings of a leg's DEX to its REG-equivalent balance.
type DexBooster struct {
	engine    *Engine
	dexs      map[string]domain.DexBoostConfig
	regSymbol string
	logger    logger.LoggerInterface
}

// NewDexBooster creates a DexBooster. dexs is keyed by lower-case DEX name.
func NewDexBooster(engine *Engine, dexs map[string]domain.DexBoostConfig, regSymbol string, log logger.LoggerInterface) *DexBooster {
	return &DexBooster{
		engine:    engine,
		dexs:      dexs,
		regSymbol: regSymbol,
		logger:    log,
	}
}

// Boost resolves the DEX settings for leg and returns its boosted balance.
func (b *DexBooster) Boost(ctx context.Context, leg liquidityApp.Leg) (LegResult, error) {
	cfg, ok := b.dexs[strings.ToLower(leg.DEX)]
	if !ok {
		return LegResult{}, unknownDex(leg.DEX)
	}

	symbol := leg.Token.Symbol()
	balance := leg.EquivalentREG

	if legacy, ok := cfg.Legacy(); ok {
		return flatResult(leg, BoostLegacy, legacy.Factor(symbol)), nil
	}

	structured, _ := cfg.Structured()
	base := structured.BaseBoost(symbol)
	if structured.V3 == nil || structured.V3.DecayFormula == domain.FormulaNone {
		return flatResult(leg, BoostDefault, base), nil
	}

	v3 := *structured.V3
	cross := base.DivRound(structured.BaseBoost(b.regSymbol), domain.Precision)
	pos := PositionFromLeg(leg, v3)

	b.logger.Debug(ctx, "boosting v3 leg",
		"dex", leg.DEX,
		"position", pos.ID,
		"token", symbol,
		"active", leg.IsActive,
		"base_boost", base,
		"cross_token_factor", cross,
	)

	res, err := b.engine.Apply(ctx, balance, pos, v3, cross)
	if err != nil {
		return LegResult{}, err
	}

	return LegResult{
		Leg:              leg,
		Kind:             BoostV3,
		Multiplier:       res.Multiplier,
		CrossTokenFactor: cross,
		BoostedBalance:   res.BoostedBalance,
	}, nil
}

func flatResult(leg liquidityApp.Leg, kind BoostKind, factor decimal.Decimal) LegResult {
	return LegResult{
		Leg:              leg,
		Kind:             kind,
		Multiplier:       factor,
		CrossTokenFactor: one,
		BoostedBalance:   leg.EquivalentREG.Mul(factor),
	}
}

// PositionFromLeg expresses leg in the bound units selected by cfg. Active
// proximity legs are single-sided: the token0 leg drops its lower bound and
// the token1 leg its upper bound.
func PositionFromLeg(leg liquidityApp.Leg, cfg domain.BoostConfig) domain.Position {
	pos := domain.Position{
		ID:        strconv.FormatUint(leg.PositionID, 10),
		Liquidity: leg.Amount.ToDecimal(),
		IsActive:  leg.IsActive,
	}

	if cfg.SourceValue == domain.SourcePrice {
		pos.Lower = decimal.NewNullDecimal(leg.PriceLower)
		pos.Upper = decimal.NewNullDecimal(leg.PriceUpper)
		pos.Current = leg.PriceCurrent
	} else {
		pos.Lower = decimal.NewNullDecimal(decimal.NewFromInt(int64(leg.TickLower)))
		pos.Upper = decimal.NewNullDecimal(decimal.NewFromInt(int64(leg.TickUpper)))
		pos.Current = decimal.NewFromInt(int64(leg.CurrentTick))
	}

	if cfg.Mode == domain.ModeProximity && leg.IsActive {
		switch leg.Side {
		case liquidityDomain.Token0:
			pos.TokenPosition = domain.TokenPositionZero
			pos.Lower = decimal.NullDecimal{}
		case liquidityDomain.Token1:
			pos.TokenPosition = domain.TokenPositionOne
			pos.Upper = decimal.NullDecimal{}
		}
	}
	return pos
}
