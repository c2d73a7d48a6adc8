package asset

import "github.com/ethereum/go-ethereum/common"

// Chain IDs of the networks REG is deployed on.
const (
	ChainIDEthereum = 1
	ChainIDGnosis   = 100
	ChainIDPolygon  = 137
)

// ChainIDs maps network names, as used in configuration and snapshots, to chain IDs.
var ChainIDs = map[string]uint64{
	"ethereum": ChainIDEthereum,
	"gnosis":   ChainIDGnosis,
	"polygon":  ChainIDPolygon,
}

// Well-known token addresses on Gnosis Chain.
var (
	AddrREGGnosis   = common.HexToAddress("0x0aa1e96d2a46ec6beb2923de1e61addf5f5f1dce")
	AddrUSDCGnosis  = common.HexToAddress("0xddafbb505ad214d7b80b1f830fccc89b60fb7a83")
	AddrWXDAIGnosis = common.HexToAddress("0xe91d153e0b41518a2ce8dd3d7944fa863463a97d")
)

// Well-known Assets (pre-created instances)
var (
	REG   = NewAssetWithName(NewTokenAssetID(ChainIDGnosis, AddrREGGnosis), "REG", "RealToken Ecosystem Governance", 18)
	USDC  = NewAssetWithName(NewTokenAssetID(ChainIDGnosis, AddrUSDCGnosis), "USDC", "USD Coin on xDai", 6)
	WXDAI = NewAssetWithName(NewTokenAssetID(ChainIDGnosis, AddrWXDAIGnosis), "WXDAI", "Wrapped XDAI", 18)
	XDAI  = NewAssetWithName(NewNativeAssetID(ChainIDGnosis), "XDAI", "xDai", 18)
)

// DefaultRegistry returns a registry pre-populated with the Gnosis tokens
// found in REG liquidity pools.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(REG)
	r.Register(USDC)
	r.Register(WXDAI)
	r.Register(XDAI)

	return r
}

// MustNewToken creates a new ERC20 token asset with the given parameters.
func MustNewToken(chainID uint64, address common.Address, symbol, name string, decimals uint8) *Asset {
	return NewAssetWithName(NewTokenAssetID(chainID, address), symbol, name, decimals)
}
