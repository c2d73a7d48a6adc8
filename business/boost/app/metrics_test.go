package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestEngine_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	engine, err := NewEngine(WithMeter(provider.Meter(MeterName)))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := engine.Multiplier(ctx, centeredLinear(), bounded("-100", "100", "0", true)); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Multiplier(ctx, proximityLinear(), bounded("-10", "10", "0", true)); err != nil {
		t.Fatal(err)
	}
	missing := bounded("-10", "10", "0", true)
	missing.Lower = decimal.NullDecimal{}
	if _, err := engine.Multiplier(ctx, centeredLinear(), missing); err == nil {
		t.Fatal("expected validation error")
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	sums := map[string]int64{}
	histCount := uint64(0)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					histCount += dp.Count
				}
			}
		}
	}

	if sums["boost_evaluations"] != 2 {
		t.Errorf("boost_evaluations = %d, want 2", sums["boost_evaluations"])
	}
	if sums["boost_validation_failures"] != 1 {
		t.Errorf("boost_validation_failures = %d, want 1", sums["boost_validation_failures"])
	}
	if histCount != 2 {
		t.Errorf("boost_multiplier count = %d, want 2", histCount)
	}
}
