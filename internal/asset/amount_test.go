package asset_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/fd1az/reg-voting-power/internal/asset"
	"github.com/shopspring/decimal"
)

func TestAmount_Basic(t *testing.T) {
	// 1 REG = 1e18 raw units
	oneREG := asset.NewAmount(asset.REG, big.NewInt(1e18))

	if oneREG.IsZero() {
		t.Error("expected non-zero amount")
	}

	d := oneREG.ToDecimal()
	if !d.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1, got %s", d.String())
	}

	if oneREG.String() != "1 REG" {
		t.Errorf("expected \"1 REG\", got %q", oneREG.String())
	}
}

func TestAmount_Add(t *testing.T) {
	a := asset.NewAmount(asset.USDC, big.NewInt(1_500_000))
	b := asset.NewAmount(asset.USDC, big.NewInt(500_000))

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sum.ToDecimal().Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected 2, got %s", sum.ToDecimal().String())
	}

	_, err = a.Add(asset.Zero(asset.REG))
	if !errors.Is(err, asset.ErrAssetMismatch) {
		t.Errorf("expected ErrAssetMismatch, got %v", err)
	}
}

func TestFromRawDecimal_Truncates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"whole", "1000000", "1"},
		{"fraction dropped", "1234567.999", "1.234567"},
		{"below one unit", "0.75", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, err := asset.FromRawDecimal(asset.USDC, decimal.RequireFromString(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !amt.ToDecimal().Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, amt.ToDecimal().String())
			}
		})
	}
}

func TestFromRawDecimal_Negative(t *testing.T) {
	_, err := asset.FromRawDecimal(asset.USDC, decimal.NewFromInt(-1))
	if !errors.Is(err, asset.ErrNegativeAmount) {
		t.Errorf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestParseDecimal(t *testing.T) {
	d := decimal.NewFromFloat(1.5)
	amount, err := asset.ParseDecimal(asset.REG, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected, _ := new(big.Int).SetString("1500000000000000000", 10)
	if amount.Raw().Cmp(expected) != 0 {
		t.Errorf("expected %s, got %s", expected.String(), amount.Raw().String())
	}
}

func TestParseDecimal_TooManyDecimals(t *testing.T) {
	// USDC has 6 decimals
	_, err := asset.ParseString(asset.USDC, "1.1234567")
	if !errors.Is(err, asset.ErrTooManyDecimals) {
		t.Errorf("expected ErrTooManyDecimals, got %v", err)
	}
}

func TestAssetID_Identity(t *testing.T) {
	regGnosis := asset.NewTokenAssetID(asset.ChainIDGnosis, asset.AddrREGGnosis)
	regGnosis2 := asset.NewTokenAssetID(asset.ChainIDGnosis, asset.AddrREGGnosis)

	if !regGnosis.Equals(regGnosis2) {
		t.Error("same asset should have equal IDs")
	}

	regPolygon := asset.NewTokenAssetID(asset.ChainIDPolygon, asset.AddrREGGnosis)
	if regGnosis.Equals(regPolygon) {
		t.Error("different chains should have different IDs")
	}
}

func TestRegistry(t *testing.T) {
	r := asset.DefaultRegistry()

	usdc, ok := r.GetToken(asset.ChainIDGnosis, asset.AddrUSDCGnosis)
	if !ok {
		t.Fatal("USDC not found in registry")
	}
	if usdc.Decimals() != 6 {
		t.Errorf("expected 6 decimals, got %d", usdc.Decimals())
	}

	reg, ok := r.GetToken(asset.ChainIDGnosis, asset.AddrREGGnosis)
	if !ok || reg.Symbol() != "REG" {
		t.Error("REG not found by address")
	}
}

func TestRegistry_Ensure(t *testing.T) {
	r := asset.DefaultRegistry()
	before := r.Count()

	dup := asset.NewAsset(asset.REG.ID(), "REG", 18)
	got, err := r.Ensure(dup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != asset.REG {
		t.Error("expected the registered REG instance")
	}

	if _, err := r.Ensure(asset.NewAsset(asset.REG.ID(), "REG", 6)); err == nil {
		t.Error("expected error for decimals mismatch")
	}

	fresh := asset.MustNewToken(asset.ChainIDGnosis, asset.AddrWXDAIGnosis, "WXDAI", "", 18)
	if _, err := r.Ensure(fresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Count() != before {
		t.Errorf("expected count %d, got %d", before, r.Count())
	}
}
