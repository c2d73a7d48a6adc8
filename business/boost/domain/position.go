package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TokenPosition marks which leg of a single-sided active position is valued.
type TokenPosition int

const (
	TokenPositionUnset TokenPosition = iota
	// TokenPositionZero values token0: liquidity from current up to the upper bound.
	TokenPositionZero
	// TokenPositionOne values token1: liquidity from the lower bound up to current.
	TokenPositionOne
)

// Position is the shape of a liquidity position as seen by the boost engine.
// Bounds and Current share the unit selected by BoostConfig.SourceValue.
// A null bound means the range is open on that side.
type Position struct {
	ID            string
	Lower         decimal.NullDecimal
	Upper         decimal.NullDecimal
	Current       decimal.Decimal
	Liquidity     decimal.Decimal
	IsActive      bool
	TokenPosition TokenPosition
}

// CheckInvariants rejects inverted bounds and an activity flag that
// contradicts the current reference. Positions exactly on a bound are
// accepted as either active or inactive.
func (p Position) CheckInvariants() error {
	if p.Lower.Valid && p.Upper.Valid && p.Lower.Decimal.GreaterThan(p.Upper.Decimal) {
		return NewPositionInvariantError(p.ID,
			fmt.Sprintf("lower bound %s above upper bound %s", p.Lower.Decimal, p.Upper.Decimal))
	}

	belowLower := p.Lower.Valid && p.Current.LessThan(p.Lower.Decimal)
	aboveUpper := p.Upper.Valid && p.Current.GreaterThan(p.Upper.Decimal)

	if p.IsActive && (belowLower || aboveUpper) {
		return NewPositionInvariantError(p.ID,
			fmt.Sprintf("active position with current %s outside its bounds", p.Current))
	}

	if !p.IsActive && p.Lower.Valid && p.Upper.Valid &&
		p.Current.GreaterThan(p.Lower.Decimal) && p.Current.LessThan(p.Upper.Decimal) {
		return NewPositionInvariantError(p.ID,
			fmt.Sprintf("inactive position with current %s strictly inside its bounds", p.Current))
	}
	return nil
}

// BoostResult is the outcome of boosting one balance.
type BoostResult struct {
	Multiplier     decimal.Decimal
	BoostedBalance decimal.Decimal
}

// String returns the boosted balance as a plain decimal string.
func (r BoostResult) String() string {
	return r.BoostedBalance.String()
}
