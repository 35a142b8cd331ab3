// internal/forecast/engine_test.go
package forecast

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

func seedSales(t *testing.T, repo *memory.SaleRepository, productID int64, quantities []int) {
	t.Helper()

	// Spread the sale events over recent days, oldest first, so the stored
	// order matches the quantities slice.
	base := time.Now().UTC().Add(-time.Duration(len(quantities)) * 24 * time.Hour)
	for i, qty := range quantities {
		err := repo.Insert(context.Background(), &domain.Sale{
			ProductID: productID,
			SoldAt:    base.Add(time.Duration(i) * 24 * time.Hour),
			Quantity:  qty,
			UnitPrice: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}
}

func TestGenerateNoSalesIsNoOp(t *testing.T) {
	sales := memory.NewSaleRepository()
	forecasts := memory.NewForecastRepository()
	engine := NewEngine(sales, forecasts)

	result, err := engine.Generate(context.Background(), 1, 30, 30)
	require.NoError(t, err)
	assert.Nil(t, result)

	stored, err := forecasts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGenerateSmallSampleUsesSimpleProjection(t *testing.T) {
	sales := memory.NewSaleRepository()
	forecasts := memory.NewForecastRepository()
	engine := NewEngine(sales, forecasts)

	// 14 events is the largest sample still handled by the simple projection.
	quantities := make([]int, 14)
	for i := range quantities {
		quantities[i] = 3
	}
	seedSales(t, sales, 1, quantities)

	result, err := engine.Generate(context.Background(), 1, 30, 30)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 90, result.Demand) // mean 3 x horizon 30
	assert.True(t, result.MeanQuantity.Equal(decimal.NewFromInt(3)), "mean was %s", result.MeanQuantity)
	assert.Equal(t, 30, result.ObservationDays)
	assert.Equal(t, 30, result.HorizonDays)
	assert.Equal(t, time.UTC, result.ComputedAt.Location())
	assert.False(t, result.ComputedAt.IsZero())
}

func TestGenerateMeanIsPerSaleEvent(t *testing.T) {
	sales := memory.NewSaleRepository()
	forecasts := memory.NewForecastRepository()
	engine := NewEngine(sales, forecasts)

	// Three events on widely separated days. A per-day mean would dilute
	// toward zero; the per-event mean stays at 3.
	seedSales(t, sales, 1, []int{2, 3, 4})

	result, err := engine.Generate(context.Background(), 1, 30, 30)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.MeanQuantity.Equal(decimal.NewFromInt(3)), "mean was %s", result.MeanQuantity)
	assert.Equal(t, 90, result.Demand)
}

func TestGenerateLargeSampleUsesSeasonalProjection(t *testing.T) {
	sales := memory.NewSaleRepository()
	forecasts := memory.NewForecastRepository()
	engine := NewEngine(sales, forecasts)

	// 15 events with a pronounced weekly pattern, one past the simple-branch
	// cutoff.
	quantities := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	seedSales(t, sales, 1, quantities)

	result, err := engine.Generate(context.Background(), 1, 30, 30)
	require.NoError(t, err)
	require.NotNil(t, result)

	series := make([]float64, len(quantities))
	for i, q := range quantities {
		series[i] = float64(q)
	}
	want := seasonalProjection(series, 30)
	assert.Equal(t, want, result.Demand)

	// The two branches genuinely disagree on this series, so the test proves
	// which one ran.
	mean := decimal.NewFromInt(120).Div(decimal.NewFromInt(15))
	assert.NotEqual(t, simpleProjection(mean, 30), result.Demand)
}

func TestGenerateIgnoresSalesOutsideWindow(t *testing.T) {
	sales := memory.NewSaleRepository()
	forecasts := memory.NewForecastRepository()
	engine := NewEngine(sales, forecasts)

	// Only sales before the observation window.
	err := sales.Insert(context.Background(), &domain.Sale{
		ProductID: 1,
		SoldAt:    time.Now().UTC().AddDate(0, 0, -45),
		Quantity:  5,
		UnitPrice: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	result, err := engine.Generate(context.Background(), 1, 30, 30)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGenerateAppendsToForecastLog(t *testing.T) {
	sales := memory.NewSaleRepository()
	forecasts := memory.NewForecastRepository()
	engine := NewEngine(sales, forecasts)

	seedSales(t, sales, 1, []int{4, 4, 4})

	first, err := engine.Generate(context.Background(), 1, 30, 30)
	require.NoError(t, err)
	second, err := engine.Generate(context.Background(), 1, 30, 30)
	require.NoError(t, err)

	stored, err := forecasts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	latest, err := forecasts.GetLatest(context.Background(), 1, 30)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSimpleProjectionRounds(t *testing.T) {
	// mean 2.5 over 7 days = 17.5, rounds half away from zero to 18.
	mean := decimal.NewFromFloat(2.5)
	assert.Equal(t, 18, simpleProjection(mean, 7))

	// mean 10/3 over 30 days = 100.
	mean = decimal.NewFromInt(10).Div(decimal.NewFromInt(3))
	assert.Equal(t, 100, simpleProjection(mean, 30))
}

func TestSeasonalProjectionConstantSeriesMatchesMean(t *testing.T) {
	// A flat series has seasonal index 1 everywhere, so the projection
	// degenerates to mean x horizon.
	series := make([]float64, 21)
	for i := range series {
		series[i] = 4
	}
	assert.Equal(t, 120, seasonalProjection(series, 30))
}
