// internal/service/trigger.go
package service

import (
	"context"
	"fmt"

	"github.com/VictorRSilva05/proactive-inventory/internal/alert"
	"github.com/VictorRSilva05/proactive-inventory/internal/cache"
	"github.com/VictorRSilva05/proactive-inventory/internal/forecast"
	"github.com/rs/zerolog/log"
)

// Notifier is invoked after any mutation that changes alert-relevant facts:
// CSV-driven sale insertion, product creation, stock edits.
type Notifier interface {
	OnInventoryOrSalesChanged(ctx context.Context, productIDs ...int64) error
}

// Trigger runs the forecast-then-evaluate pipeline synchronously: forecasts
// for every affected product first, then a single alert sweep, then dashboard
// cache invalidation.
type Trigger struct {
	forecaster      *forecast.Engine
	evaluator       *alert.Evaluator
	cache           cache.DashboardCache
	observationDays int
	horizonDays     int
}

func NewTrigger(forecaster *forecast.Engine, evaluator *alert.Evaluator, cacheImpl cache.DashboardCache, observationDays, horizonDays int) *Trigger {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if observationDays <= 0 {
		observationDays = 30
	}
	if horizonDays <= 0 {
		horizonDays = 30
	}
	return &Trigger{
		forecaster:      forecaster,
		evaluator:       evaluator,
		cache:           cacheImpl,
		observationDays: observationDays,
		horizonDays:     horizonDays,
	}
}

// Verify interface compliance
var _ Notifier = (*Trigger)(nil)

func (t *Trigger) OnInventoryOrSalesChanged(ctx context.Context, productIDs ...int64) error {
	for _, id := range productIDs {
		// A nil forecast here just means the product had no sales in the
		// window; the sweep below must still run.
		if _, err := t.forecaster.Generate(ctx, id, t.observationDays, t.horizonDays); err != nil {
			return fmt.Errorf("generate forecast for product %d: %w", id, err)
		}
	}

	if err := t.evaluator.EvaluateAll(ctx); err != nil {
		return fmt.Errorf("evaluate alerts: %w", err)
	}

	if err := t.cache.InvalidateSummary(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}

	return nil
}
