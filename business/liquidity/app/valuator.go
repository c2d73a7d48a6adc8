// Package app turns pool snapshots into per-token position legs.
package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/liquidity/domain"
	"github.com/fd1az/reg-voting-power/internal/apperror"
	"github.com/fd1az/reg-voting-power/internal/asset"
	"github.com/fd1az/reg-voting-power/internal/logger"
)

// regPlaces is the number of decimals kept for REG-equivalent values.
const regPlaces = 18

// Leg is one token side of a liquidity position, valued in REG.
type Leg struct {
	DEX           string
	Network       string
	PoolID        string
	PositionID    uint64
	Owner         common.Address
	Token         *asset.Asset
	Side          domain.TokenSide
	Amount        asset.Amount
	EquivalentREG decimal.Decimal
	IsActive      bool

	TickLower   int
	TickUpper   int
	CurrentTick int

	// Human prices of token0 in token1 units.
	PriceLower   decimal.Decimal
	PriceUpper   decimal.Decimal
	PriceCurrent decimal.Decimal
}

// Valuator decomposes pool snapshots into legs.
type Valuator struct {
	registry   *asset.Registry
	regAddress common.Address
	logger     logger.LoggerInterface
}

// NewValuator creates a Valuator that values legs against the REG token at regAddress.
func NewValuator(registry *asset.Registry, regAddress common.Address, log logger.LoggerInterface) *Valuator {
	return &Valuator{
		registry:   registry,
		regAddress: regAddress,
		logger:     log,
	}
}

// Value returns two legs (token0 then token1) for every position of the
// snapshot, ordered by position ID then lower tick.
func (v *Valuator) Value(ctx context.Context, snap domain.PoolSnapshot) ([]Leg, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	chainID := snap.ChainID()
	token0, err := v.registry.Ensure(asset.MustNewToken(chainID, snap.Token0.Address, snap.Token0.Symbol, "", snap.Token0.Decimals))
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInvalidSnapshot, "pool "+snap.PoolID+": token0", err)
	}
	token1, err := v.registry.Ensure(asset.MustNewToken(chainID, snap.Token1.Address, snap.Token1.Symbol, "", snap.Token1.Decimals))
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInvalidSnapshot, "pool "+snap.PoolID+": token1", err)
	}

	rates, err := v.regRates(snap, token0, token1)
	if err != nil {
		return nil, err
	}

	positions := make([]domain.PositionSnapshot, len(snap.Positions))
	copy(positions, snap.Positions)
	sort.SliceStable(positions, func(i, j int) bool {
		if positions[i].ID == positions[j].ID {
			return positions[i].TickLower < positions[j].TickLower
		}
		return positions[i].ID < positions[j].ID
	})

	priceCurrent := domain.AdjustedPrice(snap.CurrentTick, token0.Decimals(), token1.Decimals())

	v.logger.Debug(ctx, "valuing pool",
		"dex", snap.DEX,
		"pool", snap.PoolID,
		"tick", snap.CurrentTick,
		"price", priceCurrent.StringFixed(6),
		"positions", len(positions),
	)

	legs := make([]Leg, 0, 2*len(positions))
	for _, pos := range positions {
		if err := ctx.Err(); err != nil {
			return nil, apperror.Internal(apperror.CodeEvaluationCanceled, "pool "+snap.PoolID, err)
		}

		amounts, err := domain.DecomposePosition(pos.Range(), snap.CurrentTick, token0, token1)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInvalidSnapshot, fmt.Sprintf("pool %s position %d", snap.PoolID, pos.ID))
		}

		base := Leg{
			DEX:          snap.DEX,
			Network:      strings.ToLower(snap.Network),
			PoolID:       snap.PoolID,
			PositionID:   pos.ID,
			Owner:        pos.Owner,
			IsActive:     amounts.IsActive,
			TickLower:    pos.TickLower,
			TickUpper:    pos.TickUpper,
			CurrentTick:  snap.CurrentTick,
			PriceLower:   domain.AdjustedPrice(pos.TickLower, token0.Decimals(), token1.Decimals()),
			PriceUpper:   domain.AdjustedPrice(pos.TickUpper, token0.Decimals(), token1.Decimals()),
			PriceCurrent: priceCurrent,
		}

		leg0 := base
		leg0.Token, leg0.Side, leg0.Amount = token0, domain.Token0, amounts.Amount0
		leg0.EquivalentREG = amounts.Amount0.ToDecimal().Mul(rates[domain.Token0]).Truncate(regPlaces)

		leg1 := base
		leg1.Token, leg1.Side, leg1.Amount = token1, domain.Token1, amounts.Amount1
		leg1.EquivalentREG = amounts.Amount1.ToDecimal().Mul(rates[domain.Token1]).Truncate(regPlaces)

		v.logger.Debug(ctx, "position decomposed",
			"id", pos.ID,
			"owner", pos.Owner.Hex(),
			"active", amounts.IsActive,
			"amount0", amounts.Amount0.String(),
			"amount1", amounts.Amount1.String(),
		)

		legs = append(legs, leg0, leg1)
	}

	return legs, nil
}

// regRates returns the REG value of one unit of each pool token. A pool that
// pairs with REG prices the other token from its own sqrt price; otherwise
// the snapshot must supply a rate per symbol.
func (v *Valuator) regRates(snap domain.PoolSnapshot, token0, token1 *asset.Asset) (map[domain.TokenSide]decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	isREG0 := token0.Address() == v.regAddress
	isREG1 := token1.Address() == v.regAddress

	if isREG0 || isREG1 {
		sqrtRatio, err := snap.SqrtRatioX96()
		if err != nil {
			return nil, err
		}
		// token1 per token0 in whole units
		price := domain.PriceFromSqrtRatioX96(sqrtRatio).Shift(int32(token0.Decimals()) - int32(token1.Decimals()))
		if !price.IsPositive() {
			return nil, apperror.Validation(apperror.CodeInvalidPrice, "pool "+snap.PoolID+": zero pool price")
		}

		if isREG0 {
			return map[domain.TokenSide]decimal.Decimal{
				domain.Token0: one,
				domain.Token1: one.DivRound(price, 2*regPlaces),
			}, nil
		}
		return map[domain.TokenSide]decimal.Decimal{
			domain.Token0: price,
			domain.Token1: one,
		}, nil
	}

	rates := make(map[domain.TokenSide]decimal.Decimal, 2)
	for side, tok := range map[domain.TokenSide]*asset.Asset{domain.Token0: token0, domain.Token1: token1} {
		rate, ok := lookupRate(snap.REGRates, tok.Symbol())
		if !ok {
			return nil, apperror.NotFound(apperror.CodeMissingTokenRate,
				fmt.Sprintf("pool %s: no REG rate for %s", snap.PoolID, tok.Symbol()))
		}
		rates[side] = rate
	}
	return rates, nil
}

func lookupRate(rates map[string]decimal.Decimal, symbol string) (decimal.Decimal, bool) {
	if r, ok := rates[symbol]; ok {
		return r, true
	}
	for k, r := range rates {
		if strings.EqualFold(k, symbol) {
			return r, true
		}
	}
	return decimal.Zero, false
}
