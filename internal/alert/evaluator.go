// internal/alert/evaluator.go
package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	// forecastHorizonDays is the horizon the stockout and overstock rules
	// read; forecasts with other horizons are ignored by the evaluator.
	forecastHorizonDays = 30

	// prorateDays is the short horizon the stockout rule derives by scaling
	// the 30-day estimate linearly.
	prorateDays = 7

	// staleAfterDays is how long a product may go without a sale before the
	// stale rule fires.
	staleAfterDays = 60
)

// overstockFactor is the multiple of 30-day demand above which stock counts
// as overstock. Exact decimal, not a float.
var overstockFactor = decimal.NewFromFloat(1.5)

// Evaluator runs the alert sweep: four independent conditions per product,
// reconciled into alert rows. It updates unresolved alerts in place and never
// resolves anything; resolution is a human action.
type Evaluator struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	forecasts repository.ForecastRepository
	alerts    repository.AlertRepository

	// Serializes sweeps so two overlapping evaluations cannot both miss an
	// existing unresolved alert and double-insert.
	mu sync.Mutex
}

func NewEvaluator(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	forecasts repository.ForecastRepository,
	alerts repository.AlertRepository,
) *Evaluator {
	return &Evaluator{
		products:  products,
		sales:     sales,
		forecasts: forecasts,
		alerts:    alerts,
	}
}

// EvaluateAll sweeps every product. "Now" and "today" are captured once so a
// sweep straddling midnight compares all products against the same instant.
// A failing product aborts the rest of the sweep; alerts already written for
// earlier products are kept.
func (e *Evaluator) EvaluateAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	products, err := e.products.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	for i := range products {
		if err := e.evaluateProduct(ctx, &products[i], now, today); err != nil {
			return fmt.Errorf("evaluate product %d: %w", products[i].ID, err)
		}
	}

	log.Info().Int("products", len(products)).Msg("alert sweep completed")
	return nil
}

func (e *Evaluator) evaluateProduct(ctx context.Context, product *domain.Product, now, today time.Time) error {
	latest, err := e.forecasts.GetLatest(ctx, product.ID, forecastHorizonDays)
	if err != nil {
		return fmt.Errorf("load latest forecast: %w", err)
	}

	// Stockout risk and overstock both need a 30-day forecast; without one
	// they are skipped, not treated as zero demand.
	if latest != nil {
		stock := decimal.NewFromInt(int64(product.CurrentStock))

		demand7 := prorateDemand(latest.Demand)
		if demand7.GreaterThan(stock) {
			msg := fmt.Sprintf("Current stock (%d) is below the forecast demand for the next %d days (%s).",
				product.CurrentStock, prorateDays, demand7.StringFixed(2))
			if err := e.reconcile(ctx, product.ID, domain.AlertStockoutRisk, msg, now); err != nil {
				return err
			}
		}

		limit := decimal.NewFromInt(int64(latest.Demand)).Mul(overstockFactor)
		if stock.GreaterThan(limit) {
			msg := fmt.Sprintf("Current stock (%d) exceeds 1.5x the forecast demand for the next %d days (%d).",
				product.CurrentStock, forecastHorizonDays, latest.Demand)
			if err := e.reconcile(ctx, product.ID, domain.AlertOverstock, msg, now); err != nil {
				return err
			}
		}
	}

	lastSale, err := e.sales.GetLatestSale(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("load latest sale: %w", err)
	}
	if lastSale == nil || now.Sub(lastSale.SoldAt) > staleAfterDays*24*time.Hour {
		msg := fmt.Sprintf("No sales recorded for more than %d days.", staleAfterDays)
		if err := e.reconcile(ctx, product.ID, domain.AlertStale, msg, now); err != nil {
			return err
		}
	}

	// Date-only comparison: expiring today is not expired yet.
	if product.ExpiresAt != nil && product.ExpiresAt.UTC().Truncate(24*time.Hour).Before(today) {
		msg := fmt.Sprintf("Product expired on %s.", product.ExpiresAt.UTC().Format("2006-01-02"))
		if err := e.reconcile(ctx, product.ID, domain.AlertExpired, msg, now); err != nil {
			return err
		}
	}

	return nil
}

// reconcile enforces the at-most-one-unresolved invariant for one
// (product, kind): insert when no unresolved alert exists, otherwise refresh
// the existing row's message and timestamp. Resolved rows are ignored, so a
// condition that still holds after a human resolves its alert opens a fresh
// one on the next sweep.
func (e *Evaluator) reconcile(ctx context.Context, productID int64, kind domain.AlertKind, message string, now time.Time) error {
	existing, err := e.alerts.FindUnresolved(ctx, productID, kind)
	if err != nil {
		return fmt.Errorf("find unresolved %s alert: %w", kind, err)
	}

	if existing == nil {
		alert := &domain.Alert{
			ProductID:   productID,
			Kind:        kind,
			Message:     message,
			GeneratedAt: now,
			Resolved:    false,
		}
		if err := e.alerts.Insert(ctx, alert); err != nil {
			return fmt.Errorf("insert %s alert: %w", kind, err)
		}
		return nil
	}

	existing.Message = message
	existing.GeneratedAt = now
	if err := e.alerts.Update(ctx, existing); err != nil {
		return fmt.Errorf("update %s alert: %w", kind, err)
	}
	return nil
}

// Resolve marks an alert resolved. Unknown ids are a no-op, so the operation
// is idempotent.
func (e *Evaluator) Resolve(ctx context.Context, alertID int64) error {
	return e.alerts.MarkResolved(ctx, alertID)
}

// List returns every alert, resolved included, newest first.
func (e *Evaluator) List(ctx context.Context) ([]domain.Alert, error) {
	return e.alerts.List(ctx)
}

// prorateDemand scales a 30-day demand estimate down to prorateDays using
// exact decimal arithmetic, rounded to two places.
func prorateDemand(demand30 int) decimal.Decimal {
	return decimal.NewFromInt(int64(demand30)).
		Div(decimal.NewFromInt(forecastHorizonDays)).
		Mul(decimal.NewFromInt(prorateDays)).
		Round(2)
}
