package infra

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/app"
)

// OwnerTotal aggregates the legs of one wallet.
type OwnerTotal struct {
	Owner         common.Address
	EquivalentREG decimal.Decimal
	BoostedREG    decimal.Decimal
}

// OwnerTotals sums REG-equivalent and boosted balances per owner, ordered by address.
func OwnerTotals(results []app.LegResult) []OwnerTotal {
	byOwner := make(map[common.Address]*OwnerTotal)
	for _, res := range results {
		t, ok := byOwner[res.Leg.Owner]
		if !ok {
			t = &OwnerTotal{Owner: res.Leg.Owner}
			byOwner[res.Leg.Owner] = t
		}
		t.EquivalentREG = t.EquivalentREG.Add(res.Leg.EquivalentREG)
		t.BoostedREG = t.BoostedREG.Add(res.BoostedBalance)
	}

	out := make([]OwnerTotal, 0, len(byOwner))
	for _, t := range byOwner {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Owner.Bytes(), out[j].Owner.Bytes()) < 0
	})
	return out
}
