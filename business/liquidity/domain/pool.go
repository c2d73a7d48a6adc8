package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/internal/apperror"
	"github.com/fd1az/reg-voting-power/internal/asset"
)

// TokenSide identifies which leg of a pool a token is.
type TokenSide int

const (
	Token0 TokenSide = 0
	Token1 TokenSide = 1
)

func (s TokenSide) String() string {
	if s == Token1 {
		return "token1"
	}
	return "token0"
}

// TokenInfo describes one pool token as reported by a subgraph.
type TokenInfo struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

// PositionSnapshot is a liquidity position as fetched at the snapshot block.
type PositionSnapshot struct {
	ID        uint64          `json:"id,string"`
	Owner     common.Address  `json:"owner"`
	TickLower int             `json:"tickLower"`
	TickUpper int             `json:"tickUpper"`
	Liquidity decimal.Decimal `json:"liquidity"`
}

// Range returns the position's tick range and liquidity.
func (p PositionSnapshot) Range() PositionRange {
	return PositionRange{TickLower: p.TickLower, TickUpper: p.TickUpper, Liquidity: p.Liquidity}
}

// PoolSnapshot is the state of one concentrated-liquidity pool and its positions.
type PoolSnapshot struct {
	DEX          string                     `json:"dex"`
	Network      string                     `json:"network"`
	PoolID       string                     `json:"poolId"`
	CurrentTick  int                        `json:"currentTick"`
	SqrtPriceX96 string                     `json:"sqrtPriceX96,omitempty"`
	Token0       TokenInfo                  `json:"token0"`
	Token1       TokenInfo                  `json:"token1"`
	Positions    []PositionSnapshot         `json:"positions"`
	REGRates     map[string]decimal.Decimal `json:"regRates,omitempty"`
}

// Validate checks the snapshot shape. Per-position ranges are checked during decomposition.
func (p *PoolSnapshot) Validate() error {
	switch {
	case p.DEX == "":
		return invalidSnapshot(p.PoolID, "dex is required")
	case p.Token0.Symbol == "" || p.Token1.Symbol == "":
		return invalidSnapshot(p.PoolID, "token symbols are required")
	case p.Token0.Address == p.Token1.Address:
		return invalidSnapshot(p.PoolID, "token0 and token1 must differ")
	case p.CurrentTick < MinTick || p.CurrentTick > MaxTick:
		return invalidSnapshot(p.PoolID, fmt.Sprintf("current tick %d out of range", p.CurrentTick))
	}
	if _, ok := asset.ChainIDs[strings.ToLower(p.Network)]; !ok {
		return invalidSnapshot(p.PoolID, fmt.Sprintf("unknown network %q", p.Network))
	}
	return nil
}

// ChainID returns the chain ID of the snapshot's network.
func (p *PoolSnapshot) ChainID() uint64 {
	return asset.ChainIDs[strings.ToLower(p.Network)]
}

// SqrtRatioX96 returns the pool's reported sqrtPriceX96, or the one implied
// by the current tick when the snapshot does not carry it.
func (p *PoolSnapshot) SqrtRatioX96() (*uint256.Int, error) {
	if p.SqrtPriceX96 == "" {
		return SqrtRatioX96AtTick(p.CurrentTick)
	}
	v, err := uint256.FromDecimal(p.SqrtPriceX96)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeInvalidSnapshot, "pool "+p.PoolID+": sqrtPriceX96", err)
	}
	return v, nil
}

func invalidSnapshot(poolID, reason string) error {
	return apperror.Validation(apperror.CodeInvalidSnapshot, fmt.Sprintf("pool %s: %s", poolID, reason))
}
