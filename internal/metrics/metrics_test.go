package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fd1az/reg-voting-power/internal/metrics"
)

func TestParseProvider(t *testing.T) {
	if got := metrics.ParseProvider("OTLP-GRPC"); got != metrics.OtelCollector {
		t.Errorf("expected otlp-grpc, got %s", got)
	}
	if got := metrics.ParseProvider("anything"); got != metrics.PrometheusProvider {
		t.Errorf("expected prometheus fallback, got %s", got)
	}
}

func TestNewMetricProvider_Prometheus(t *testing.T) {
	reg := prometheus.NewRegistry()

	mp, err := metrics.NewMetricProvider(
		metrics.WithServiceName("vp-test"),
		metrics.WithRegisterer(reg),
		metrics.WithProviderConfig(metrics.ProviderCfg{Provider: metrics.PrometheusProvider}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mp.Shutdown(context.Background())

	counter, err := mp.Meter("test").Int64Counter("boost_evaluations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counter.Add(context.Background(), 3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "boost_evaluations_total" {
			found = true
			if v := f.GetMetric()[0].GetCounter().GetValue(); v != 3 {
				t.Errorf("expected 3, got %v", v)
			}
		}
	}
	if !found {
		t.Error("boost_evaluations_total not exported")
	}
}

func TestNewMetricProvider_ManualRequiresReader(t *testing.T) {
	_, err := metrics.NewMetricProvider(
		metrics.WithProviderConfig(metrics.NewManualConfig(nil)),
	)
	if err == nil {
		t.Error("expected error for manual provider without reader")
	}
}
