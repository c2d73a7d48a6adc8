package infra

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/app"
)

// JSONReporter writes boosted legs and owner totals as a JSON document.
type JSONReporter struct {
	out io.Writer
}

var _ app.Reporter = (*JSONReporter)(nil)

// NewJSONReporter creates a JSONReporter writing to w, or stdout when w is nil.
func NewJSONReporter(w io.Writer) *JSONReporter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONReporter{out: w}
}

type legJSON struct {
	DEX              string          `json:"dex"`
	Network          string          `json:"network"`
	PoolID           string          `json:"poolId"`
	PositionID       uint64          `json:"positionId,string"`
	Owner            string          `json:"owner"`
	Token            string          `json:"tokenSymbol"`
	TokenAddress     string          `json:"tokenAddress"`
	TokenPosition    int             `json:"tokenPosition"`
	Amount           decimal.Decimal `json:"amount"`
	IsActive         bool            `json:"isActive"`
	TickLower        int             `json:"tickLower"`
	TickUpper        int             `json:"tickUpper"`
	CurrentTick      int             `json:"currentTick"`
	MinPrice         decimal.Decimal `json:"minPrice"`
	MaxPrice         decimal.Decimal `json:"maxPrice"`
	CurrentPrice     decimal.Decimal `json:"currentPrice"`
	EquivalentREG    decimal.Decimal `json:"equivalentREG"`
	Kind             app.BoostKind   `json:"boostKind"`
	Multiplier       decimal.Decimal `json:"multiplier"`
	CrossTokenFactor decimal.Decimal `json:"crossTokenFactor"`
	BoostedREG       decimal.Decimal `json:"boostedREG"`
}

type ownerJSON struct {
	Owner         string          `json:"owner"`
	EquivalentREG decimal.Decimal `json:"equivalentREG"`
	VotingPower   decimal.Decimal `json:"votingPower"`
}

type reportJSON struct {
	Legs   []legJSON   `json:"legs"`
	Owners []ownerJSON `json:"owners"`
}

// Report implements app.Reporter.
func (r *JSONReporter) Report(_ context.Context, results []app.LegResult) error {
	doc := reportJSON{
		Legs:   make([]legJSON, 0, len(results)),
		Owners: []ownerJSON{},
	}

	for _, res := range results {
		leg := res.Leg
		doc.Legs = append(doc.Legs, legJSON{
			DEX:              leg.DEX,
			Network:          leg.Network,
			PoolID:           leg.PoolID,
			PositionID:       leg.PositionID,
			Owner:            leg.Owner.Hex(),
			Token:            leg.Token.Symbol(),
			TokenAddress:     leg.Token.Address().Hex(),
			TokenPosition:    int(leg.Side),
			Amount:           leg.Amount.ToDecimal(),
			IsActive:         leg.IsActive,
			TickLower:        leg.TickLower,
			TickUpper:        leg.TickUpper,
			CurrentTick:      leg.CurrentTick,
			MinPrice:         leg.PriceLower,
			MaxPrice:         leg.PriceUpper,
			CurrentPrice:     leg.PriceCurrent,
			EquivalentREG:    leg.EquivalentREG,
			Kind:             res.Kind,
			Multiplier:       res.Multiplier,
			CrossTokenFactor: res.CrossTokenFactor,
			BoostedREG:       res.BoostedBalance,
		})
	}

	for _, t := range OwnerTotals(results) {
		doc.Owners = append(doc.Owners, ownerJSON{
			Owner:         t.Owner.Hex(),
			EquivalentREG: t.EquivalentREG,
			VotingPower:   t.BoostedREG,
		})
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
