package boost_test

import (
	"context"
	"io"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/fd1az/reg-voting-power/business/boost"
	boostApp "github.com/fd1az/reg-voting-power/business/boost/app"
	boostDI "github.com/fd1az/reg-voting-power/business/boost/di"
	"github.com/fd1az/reg-voting-power/business/liquidity"
	liquidityDI "github.com/fd1az/reg-voting-power/business/liquidity/di"
	liquidityDomain "github.com/fd1az/reg-voting-power/business/liquidity/domain"
	"github.com/fd1az/reg-voting-power/internal/apm"
	"github.com/fd1az/reg-voting-power/internal/asset"
	"github.com/fd1az/reg-voting-power/internal/config"
	"github.com/fd1az/reg-voting-power/internal/logger"
	"github.com/fd1az/reg-voting-power/internal/monolith"
)

func f64(v float64) *float64 {
	return &v
}

func testConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Name: "vp-test", LogLevel: "error"},
		Tokens:     config.TokensConfig{REGAddress: asset.AddrREGGnosis.Hex(), REGSymbol: "REG", Network: "gnosis"},
		Evaluation: config.EvaluationConfig{Workers: 2, Format: config.FormatJSON},
		Boost: config.BoostConfig{Dexs: map[string]config.DexBoostSettings{
			"balancer": {Default: map[string]float64{"REG": 2, "WXDAI": 1}},
			"sushiswap": {
				Default: map[string]float64{"REG": 2, "WXDAI": 1},
				V3: &config.V3BoostSettings{
					SourceValue:  "tick",
					Mode:         "centered",
					DecayFormula: "linear",
					MaxBoost:     f64(4),
					MinBoost:     f64(1),
				},
			},
		}},
	}
}

func startMonolith(t *testing.T, cfg *config.Config) *monolith.App {
	t.Helper()
	log := logger.New(io.Discard, logger.LevelError, "vp-test", nil)

	mono, err := monolith.New(cfg, log)
	if err != nil {
		t.Fatalf("monolith.New: %v", err)
	}
	mono.Container().Register(monolith.ServiceMeter, noop.NewMeterProvider().Meter(boostApp.MeterName))
	mono.Container().Register(monolith.ServiceTracer, apm.NewTracer("vp-test"))

	modules := []monolith.Module{&liquidity.Module{}, &boost.Module{}}
	if err := mono.RegisterModules(modules...); err != nil {
		t.Fatalf("RegisterModules: %v", err)
	}
	if err := mono.StartModules(context.Background(), modules...); err != nil {
		t.Fatalf("StartModules: %v", err)
	}
	return mono
}

func pool(dex string) liquidityDomain.PoolSnapshot {
	return liquidityDomain.PoolSnapshot{
		DEX:          dex,
		Network:      "gnosis",
		PoolID:       "0xpool",
		CurrentTick:  0,
		SqrtPriceX96: "79228162514264337593543950336",
		Token0:       liquidityDomain.TokenInfo{Address: asset.AddrREGGnosis, Symbol: "REG", Decimals: 18},
		Token1:       liquidityDomain.TokenInfo{Address: asset.AddrWXDAIGnosis, Symbol: "WXDAI", Decimals: 18},
		Positions: []liquidityDomain.PositionSnapshot{
			{ID: 1, Owner: common.HexToAddress("0x1111111111111111111111111111111111111111"), TickLower: -100, TickUpper: 100, Liquidity: decimal.New(1, 18)},
		},
	}
}

func TestModule_EvaluatesPools(t *testing.T) {
	mono := startMonolith(t, testConfig())
	ctx := context.Background()

	valuator := liquidityDI.GetValuator(mono.Services())
	batch := boostDI.GetBatchEvaluator(mono.Services())

	for _, tc := range []struct {
		dex      string
		wantKind boostApp.BoostKind
		wantREG  string // multiplier applied to the REG leg
	}{
		{"balancer", boostApp.BoostDefault, "2"},
		{"sushiswap", boostApp.BoostV3, "4"},
	} {
		t.Run(tc.dex, func(t *testing.T) {
			legs, err := valuator.Value(ctx, pool(tc.dex))
			if err != nil {
				t.Fatalf("Value: %v", err)
			}
			results, err := batch.Evaluate(ctx, legs)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if len(results) != 2 {
				t.Fatalf("expected 2 results, got %d", len(results))
			}
			regLeg := results[0]
			if regLeg.Kind != tc.wantKind {
				t.Errorf("kind = %s, want %s", regLeg.Kind, tc.wantKind)
			}
			if !regLeg.Multiplier.Equal(decimal.RequireFromString(tc.wantREG)) {
				t.Errorf("multiplier = %s, want %s", regLeg.Multiplier, tc.wantREG)
			}
		})
	}

	if boostDI.GetReporter(mono.Services()) == nil {
		t.Error("reporter not registered")
	}
}

func TestModule_StartupRejectsBadSettings(t *testing.T) {
	cfg := testConfig()
	cfg.Boost.Dexs["sushiswap"].V3.Mode = "sideways"

	log := logger.New(io.Discard, logger.LevelError, "vp-test", nil)
	mono, err := monolith.New(cfg, log)
	if err != nil {
		t.Fatal(err)
	}

	m := &boost.Module{}
	if err := mono.RegisterModules(m); err != nil {
		t.Fatal(err)
	}
	if err := mono.StartModules(context.Background(), m); err == nil {
		t.Error("expected startup error for unknown boost mode")
	}
}
