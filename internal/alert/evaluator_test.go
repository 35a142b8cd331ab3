// internal/alert/evaluator_test.go
package alert

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository/memory"
)

type fixture struct {
	products  *memory.ProductRepository
	sales     *memory.SaleRepository
	forecasts *memory.ForecastRepository
	alerts    *memory.AlertRepository
	evaluator *Evaluator
}

func newFixture() *fixture {
	f := &fixture{
		products:  memory.NewProductRepository(),
		sales:     memory.NewSaleRepository(),
		forecasts: memory.NewForecastRepository(),
		alerts:    memory.NewAlertRepository(),
	}
	f.evaluator = NewEvaluator(f.products, f.sales, f.forecasts, f.alerts)
	return f
}

func (f *fixture) addProduct(t *testing.T, stock int, expiresAt *time.Time) int64 {
	t.Helper()
	product := &domain.Product{
		Name:         "Widget",
		CategoryID:   1,
		CurrentStock: stock,
		ExpiresAt:    expiresAt,
	}
	require.NoError(t, f.products.Create(context.Background(), product))
	return product.ID
}

func (f *fixture) addSale(t *testing.T, productID int64, daysAgo int) {
	t.Helper()
	require.NoError(t, f.sales.Insert(context.Background(), &domain.Sale{
		ProductID: productID,
		SoldAt:    time.Now().UTC().Add(-time.Duration(daysAgo) * 24 * time.Hour),
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(10),
	}))
}

func (f *fixture) addForecast(t *testing.T, productID int64, horizonDays, demand int) {
	t.Helper()
	require.NoError(t, f.forecasts.Save(context.Background(), &domain.Forecast{
		ProductID:   productID,
		HorizonDays: horizonDays,
		Demand:      demand,
		ComputedAt:  time.Now().UTC(),
	}))
}

func (f *fixture) unresolved(t *testing.T, productID int64, kind domain.AlertKind) *domain.Alert {
	t.Helper()
	alert, err := f.alerts.FindUnresolved(context.Background(), productID, kind)
	require.NoError(t, err)
	return alert
}

func (f *fixture) countByKind(t *testing.T, kind domain.AlertKind) int {
	t.Helper()
	all, err := f.alerts.List(context.Background())
	require.NoError(t, err)
	var n int
	for _, a := range all {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

func TestProrateDemand(t *testing.T) {
	assert.Equal(t, "23.33", prorateDemand(100).StringFixed(2))
	assert.Equal(t, "14.00", prorateDemand(60).StringFixed(2))
	assert.Equal(t, "0.00", prorateDemand(0).StringFixed(2))
}

func TestStockoutRiskFires(t *testing.T) {
	f := newFixture()
	id := f.addProduct(t, 10, nil)
	f.addSale(t, id, 1)
	f.addForecast(t, id, 30, 60) // 7-day prorated demand 14.00 > 10

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))

	alert := f.unresolved(t, id, domain.AlertStockoutRisk)
	require.NotNil(t, alert)
	assert.Contains(t, alert.Message, "(10)")
	assert.Contains(t, alert.Message, "14.00")
}

func TestStockoutRiskUpdatesInPlace(t *testing.T) {
	f := newFixture()
	id := f.addProduct(t, 10, nil)
	f.addSale(t, id, 1)
	f.addForecast(t, id, 30, 60)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))
	first := f.unresolved(t, id, domain.AlertStockoutRisk)
	require.NotNil(t, first)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))
	second := f.unresolved(t, id, domain.AlertStockoutRisk)
	require.NotNil(t, second)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.countByKind(t, domain.AlertStockoutRisk))
	assert.False(t, second.GeneratedAt.Before(first.GeneratedAt))
}

func TestStockoutSkippedWithoutThirtyDayForecast(t *testing.T) {
	f := newFixture()
	id := f.addProduct(t, 0, nil)
	f.addSale(t, id, 1)
	f.addForecast(t, id, 15, 60) // wrong horizon: no demand signal

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))

	assert.Nil(t, f.unresolved(t, id, domain.AlertStockoutRisk))
	assert.Nil(t, f.unresolved(t, id, domain.AlertOverstock))
}

func TestOverstockThresholdIsStrict(t *testing.T) {
	f := newFixture()

	over := f.addProduct(t, 151, nil)
	f.addSale(t, over, 1)
	f.addForecast(t, over, 30, 100)

	atLimit := f.addProduct(t, 150, nil)
	f.addSale(t, atLimit, 1)
	f.addForecast(t, atLimit, 30, 100)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))

	require.NotNil(t, f.unresolved(t, over, domain.AlertOverstock))
	assert.Nil(t, f.unresolved(t, atLimit, domain.AlertOverstock))
}

func TestStaleFiresForProductWithoutSales(t *testing.T) {
	f := newFixture()
	id := f.addProduct(t, 5, nil)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))

	alert := f.unresolved(t, id, domain.AlertStale)
	require.NotNil(t, alert)
	assert.Contains(t, alert.Message, "60")
}

func TestStaleRespectsCutoff(t *testing.T) {
	f := newFixture()

	stale := f.addProduct(t, 5, nil)
	f.addSale(t, stale, 61)

	fresh := f.addProduct(t, 5, nil)
	f.addSale(t, fresh, 10)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))

	require.NotNil(t, f.unresolved(t, stale, domain.AlertStale))
	assert.Nil(t, f.unresolved(t, fresh, domain.AlertStale))
}

func TestExpiredComparesDatesOnly(t *testing.T) {
	f := newFixture()

	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	expired := f.addProduct(t, 5, &yesterday)
	f.addSale(t, expired, 1)

	// Expiring today, even at an hour already past, is not expired yet.
	today := time.Now().UTC().Truncate(24 * time.Hour).Add(2 * time.Hour)
	expiringToday := f.addProduct(t, 5, &today)
	f.addSale(t, expiringToday, 1)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))

	alert := f.unresolved(t, expired, domain.AlertExpired)
	require.NotNil(t, alert)
	assert.Contains(t, alert.Message, yesterday.Format("2006-01-02"))
	assert.Nil(t, f.unresolved(t, expiringToday, domain.AlertExpired))
}

func TestSweepNeverResolves(t *testing.T) {
	f := newFixture()
	id := f.addProduct(t, 10, nil)
	f.addSale(t, id, 1)
	f.addForecast(t, id, 30, 60)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))
	require.NotNil(t, f.unresolved(t, id, domain.AlertStockoutRisk))

	// Restocking clears the condition, but the open alert stays open.
	product, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	product.CurrentStock = 500
	require.NoError(t, f.products.Update(context.Background(), product))

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))
	assert.NotNil(t, f.unresolved(t, id, domain.AlertStockoutRisk))
}

func TestResolvedAlertReopensAsNewRow(t *testing.T) {
	f := newFixture()
	id := f.addProduct(t, 10, nil)
	f.addSale(t, id, 1)
	f.addForecast(t, id, 30, 60)

	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))
	first := f.unresolved(t, id, domain.AlertStockoutRisk)
	require.NotNil(t, first)

	require.NoError(t, f.evaluator.Resolve(context.Background(), first.ID))
	assert.Nil(t, f.unresolved(t, id, domain.AlertStockoutRisk))

	// The condition still holds, so the next sweep opens a fresh alert.
	require.NoError(t, f.evaluator.EvaluateAll(context.Background()))
	second := f.unresolved(t, id, domain.AlertStockoutRisk)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, f.countByKind(t, domain.AlertStockoutRisk))
}

func TestResolveUnknownIDIsIdempotent(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.evaluator.Resolve(context.Background(), 9999))
}
