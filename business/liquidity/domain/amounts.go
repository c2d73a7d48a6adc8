package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/internal/apperror"
	"github.com/fd1az/reg-voting-power/internal/asset"
)

// PositionRange is the tick range and liquidity of one pool position.
type PositionRange struct {
	TickLower int
	TickUpper int
	Liquidity decimal.Decimal
}

// PositionAmounts is the per-token content of a position at a given tick.
type PositionAmounts struct {
	Amount0  asset.Amount
	Amount1  asset.Amount
	IsActive bool
}

// DecomposePosition splits a position's liquidity into token amounts at currentTick.
//
// Below the range the position holds only token0, at or above the upper tick
// only token1, and in between both (the position is active). Amounts are
// truncated to each token's decimals, never rounded up.
func DecomposePosition(r PositionRange, currentTick int, token0, token1 *asset.Asset) (PositionAmounts, error) {
	if token0 == nil || token1 == nil {
		return PositionAmounts{}, asset.ErrNilAsset
	}
	if r.TickLower >= r.TickUpper {
		return PositionAmounts{}, apperror.Validation(apperror.CodePositionInvariant,
			fmt.Sprintf("tickLower %d must be < tickUpper %d", r.TickLower, r.TickUpper))
	}
	if r.TickLower < MinTick || r.TickUpper > MaxTick {
		return PositionAmounts{}, apperror.Validation(apperror.CodeTickOutOfRange,
			fmt.Sprintf("range [%d, %d]", r.TickLower, r.TickUpper))
	}
	if r.Liquidity.IsNegative() {
		return PositionAmounts{}, apperror.Validation(apperror.CodeInvalidSnapshot,
			fmt.Sprintf("negative liquidity %s", r.Liquidity))
	}

	sqrtLower := SqrtPriceAtTick(r.TickLower)
	sqrtUpper := SqrtPriceAtTick(r.TickUpper)
	one := decimal.NewFromInt(1)
	inv := func(d decimal.Decimal) decimal.Decimal { return one.DivRound(d, reciprocalPrecision) }

	raw0, raw1 := decimal.Zero, decimal.Zero
	active := false

	switch {
	case currentTick < r.TickLower:
		raw0 = r.Liquidity.Mul(inv(sqrtLower).Sub(inv(sqrtUpper)))
	case currentTick >= r.TickUpper:
		raw1 = r.Liquidity.Mul(sqrtUpper.Sub(sqrtLower))
	default:
		sqrtCurrent := SqrtPriceAtTick(currentTick)
		raw0 = r.Liquidity.Mul(inv(sqrtCurrent).Sub(inv(sqrtUpper)))
		raw1 = r.Liquidity.Mul(sqrtCurrent.Sub(sqrtLower))
		active = true
	}

	amount0, err := asset.FromRawDecimal(token0, raw0)
	if err != nil {
		return PositionAmounts{}, fmt.Errorf("amount0: %w", err)
	}
	amount1, err := asset.FromRawDecimal(token1, raw1)
	if err != nil {
		return PositionAmounts{}, fmt.Errorf("amount1: %w", err)
	}

	return PositionAmounts{Amount0: amount0, Amount1: amount1, IsActive: active}, nil
}
