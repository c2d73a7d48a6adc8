// Package domain contains the concentrated-liquidity math used to value
// REG pool positions: tick/price conversion and position decomposition.
package domain

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/internal/apperror"
)

const (
	MinTick = -887272 // The minimum tick that can be used on any pool.
	MaxTick = -MinTick

	// Fractional digits kept while raising the tick base to an integer power.
	powPrecision = 40
	// Fractional digits kept for reciprocals of large powers (negative ticks).
	reciprocalPrecision = 60
	lnPrecision         = 40
)

var (
	// TickBase is the per-tick price step.
	TickBase = decimal.RequireFromString("1.0001")

	sqrtTickBase = decimal.RequireFromString("1.000049998750062496094023416993798697215")
	lnTickBase   = decimal.RequireFromString("0.0000999950003333083353331666809511310634820644")

	q96 = decimal.NewFromBigInt(new(uint256.Int).Lsh(uint256.NewInt(1), 96).ToBig(), 0)
	q32 = new(uint256.Int).Lsh(uint256.NewInt(1), 32)

	maxUint256 = new(uint256.Int).SetAllOne()
)

// PriceAtTick returns TickBase^tick, the raw token1/token0 price of a tick.
// PriceAtTick(0) is exactly 1 and the result is strictly increasing in tick.
func PriceAtTick(tick int) decimal.Decimal {
	return powTick(TickBase, tick)
}

// SqrtPriceAtTick returns sqrt(TickBase^tick).
func SqrtPriceAtTick(tick int) decimal.Decimal {
	return powTick(sqrtTickBase, tick)
}

// powTick raises base to an integer power by squaring, rounding every
// intermediate so large ticks do not blow up the mantissa.
func powTick(base decimal.Decimal, tick int) decimal.Decimal {
	n := tick
	if n < 0 {
		n = -n
	}

	result := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(powPrecision)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(powPrecision)
		}
	}

	if tick < 0 {
		return decimal.NewFromInt(1).DivRound(result, reciprocalPrecision)
	}
	return result
}

// TickAtPrice returns the greatest tick whose price does not exceed price.
func TickAtPrice(price decimal.Decimal) (int, error) {
	if !price.IsPositive() {
		return 0, apperror.Validation(apperror.CodeInvalidPrice, fmt.Sprintf("price must be > 0, got %s", price))
	}

	ln, err := price.Ln(lnPrecision)
	if err != nil {
		return 0, apperror.Internal(apperror.CodeInvalidPrice, "ln of price", err)
	}

	tick := int(ln.DivRound(lnTickBase, 8).Round(0).IntPart())
	if tick < MinTick || tick > MaxTick {
		return 0, apperror.Validation(apperror.CodeTickOutOfRange, fmt.Sprintf("price %s maps to tick %d", price, tick))
	}

	// ln is approximate; settle on the exact floor against PriceAtTick.
	for PriceAtTick(tick).GreaterThan(price) {
		tick--
	}
	for PriceAtTick(tick + 1).LessThanOrEqual(price) {
		tick++
	}
	return tick, nil
}

// AdjustedPrice returns the human price of token0 in token1 units at tick:
// PriceAtTick(tick) / 10^(decimals1-decimals0).
func AdjustedPrice(tick int, decimals0, decimals1 uint8) decimal.Decimal {
	return PriceAtTick(tick).Shift(int32(decimals0) - int32(decimals1))
}

// SqrtRatioX96AtTick returns sqrt(1.0001^tick) as a Q64.96 fixed point number,
// rounded up, exactly as pool contracts compute it.
func SqrtRatioX96AtTick(tick int) (*uint256.Int, error) {
	absTick := tick
	if tick < 0 {
		absTick = -tick
	}
	if absTick > MaxTick {
		return nil, apperror.Validation(apperror.CodeTickOutOfRange, fmt.Sprintf("tick %d", tick))
	}

	var ratio *uint256.Int
	if absTick&0x1 != 0 {
		ratio = uint256.MustFromHex("0xfffcb933bd6fad37aa2d162d1a594001")
	} else {
		ratio = uint256.MustFromHex("0x100000000000000000000000000000000")
	}
	for _, m := range sqrtRatioMultipliers {
		if absTick&m.bit != 0 {
			ratio.Mul(ratio, m.factor)
			ratio.Rsh(ratio, 128)
		}
	}
	if tick > 0 {
		ratio = new(uint256.Int).Div(maxUint256, ratio)
	}

	// back to Q96, rounding up
	rem := new(uint256.Int).Mod(ratio, q32)
	ratio.Rsh(ratio, 32)
	if !rem.IsZero() {
		ratio.AddUint64(ratio, 1)
	}
	return ratio, nil
}

// SqrtRatioX96ToDecimal converts a Q64.96 sqrt ratio to a decimal sqrt price.
func SqrtRatioX96ToDecimal(sqrtRatioX96 *uint256.Int) decimal.Decimal {
	return decimal.NewFromBigInt(sqrtRatioX96.ToBig(), 0).DivRound(q96, reciprocalPrecision)
}

// PriceFromSqrtRatioX96 returns the raw token1/token0 price encoded by a pool's sqrtPriceX96.
func PriceFromSqrtRatioX96(sqrtRatioX96 *uint256.Int) decimal.Decimal {
	s := SqrtRatioX96ToDecimal(sqrtRatioX96)
	return s.Mul(s).Round(reciprocalPrecision)
}

type sqrtRatioMultiplier struct {
	bit    int
	factor *uint256.Int
}

var sqrtRatioMultipliers = []sqrtRatioMultiplier{
	{0x2, uint256.MustFromHex("0xfff97272373d413259a46990580e213a")},
	{0x4, uint256.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcc")},
	{0x8, uint256.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941cd0")},
	{0x10, uint256.MustFromHex("0xffcb9843d60f6159c9db58835c926644")},
	{0x20, uint256.MustFromHex("0xff973b41fa98c081472e6896dfb254c0")},
	{0x40, uint256.MustFromHex("0xff2ea16466c96a3843ec78b326b52861")},
	{0x80, uint256.MustFromHex("0xfe5dee046a99a2a811c461f1969c3053")},
	{0x100, uint256.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a4")},
	{0x200, uint256.MustFromHex("0xf987a7253ac413176f2b074cf7815e54")},
	{0x400, uint256.MustFromHex("0xf3392b0822b70005940c7a398e4b70f3")},
	{0x800, uint256.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d9")},
	{0x1000, uint256.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825")},
	{0x2000, uint256.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e5")},
	{0x4000, uint256.MustFromHex("0x70d869a156d2a1b890bb3df62baf32f7")},
	{0x8000, uint256.MustFromHex("0x31be135f97d08fd981231505542fcfa6")},
	{0x10000, uint256.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc9")},
	{0x20000, uint256.MustFromHex("0x5d6af8dedb81196699c329225ee604")},
	{0x40000, uint256.MustFromHex("0x2216e584f5fa1ea926041bedfe98")},
	{0x80000, uint256.MustFromHex("0x48a170391f7dc42444e8fa2")},
}
