package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	liquidityApp "github.com/fd1az/reg-voting-power/business/liquidity/app"
	"github.com/fd1az/reg-voting-power/internal/apperror"
	"github.com/fd1az/reg-voting-power/internal/logger"
)

// BatchEvaluator boosts many legs concurrently with a bounded number of workers.
type BatchEvaluator struct {
	booster *DexBooster
	workers int
	logger  logger.LoggerInterface
}

// NewBatchEvaluator creates a BatchEvaluator. workers < 1 means one worker.
func NewBatchEvaluator(booster *DexBooster, workers int, log logger.LoggerInterface) *BatchEvaluator {
	if workers < 1 {
		workers = 1
	}
	return &BatchEvaluator{
		booster: booster,
		workers: workers,
		logger:  log,
	}
}

// Evaluate boosts every leg and returns the results in input order. The
// first failure cancels the remaining work and is returned.
func (e *BatchEvaluator) Evaluate(ctx context.Context, legs []liquidityApp.Leg) ([]LegResult, error) {
	results := make([]LegResult, len(legs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range legs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return apperror.Internal(apperror.CodeEvaluationCanceled, "batch", err)
			}
			res, err := e.booster.Boost(gctx, legs[i])
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Error(ctx, "batch evaluation failed", "legs", len(legs), "error", err)
		return nil, err
	}

	e.logger.Info(ctx, "batch evaluated", "legs", len(legs), "workers", e.workers)
	return results, nil
}
