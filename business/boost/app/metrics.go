package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/fd1az/reg-voting-power/business/boost/domain"
)

// MeterName is the instrumentation scope of boost metrics.
const MeterName = "github.com/fd1az/reg-voting-power/business/boost"

type instruments struct {
	evaluations        metric.Int64Counter
	validationFailures metric.Int64Counter
	multiplier         metric.Float64Histogram
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(MeterName)
	}

	evaluations, err := meter.Int64Counter("boost_evaluations",
		metric.WithDescription("Boost multiplier computations by mode and formula"))
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("boost_validation_failures",
		metric.WithDescription("Boost computations rejected by config or position validation"))
	if err != nil {
		return nil, err
	}

	multiplier, err := meter.Float64Histogram("boost_multiplier",
		metric.WithDescription("Computed boost multipliers"),
		metric.WithExplicitBucketBoundaries(0.5, 1, 1.5, 2, 3, 4, 5, 7.5, 10))
	if err != nil {
		return nil, err
	}

	return &instruments{
		evaluations:        evaluations,
		validationFailures: failures,
		multiplier:         multiplier,
	}, nil
}

func configAttrs(cfg domain.BoostConfig) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("mode", string(cfg.Mode)),
		attribute.String("formula", string(cfg.DecayFormula)),
	)
}

func (i *instruments) recordEvaluation(ctx context.Context, cfg domain.BoostConfig, m decimal.Decimal) {
	attrs := configAttrs(cfg)
	i.evaluations.Add(ctx, 1, attrs)
	i.multiplier.Record(ctx, m.InexactFloat64(), attrs)
}

func (i *instruments) recordFailure(ctx context.Context, cfg domain.BoostConfig) {
	i.validationFailures.Add(ctx, 1, configAttrs(cfg))
}
