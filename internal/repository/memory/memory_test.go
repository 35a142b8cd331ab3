// internal/repository/memory/memory_test.go
package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
)

func TestForecastGetLatestFiltersByHorizon(t *testing.T) {
	repo := NewForecastRepository()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(context.Background(), &domain.Forecast{
		ProductID: 1, HorizonDays: 30, Demand: 10, ComputedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Save(context.Background(), &domain.Forecast{
		ProductID: 1, HorizonDays: 7, Demand: 99, ComputedAt: now,
	}))
	require.NoError(t, repo.Save(context.Background(), &domain.Forecast{
		ProductID: 1, HorizonDays: 30, Demand: 20, ComputedAt: now,
	}))

	latest, err := repo.GetLatest(context.Background(), 1, 30)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 20, latest.Demand)

	none, err := repo.GetLatest(context.Background(), 1, 90)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestForecastGetLatestBreaksTiesByID(t *testing.T) {
	repo := NewForecastRepository()
	at := time.Now().UTC()

	first := &domain.Forecast{ProductID: 1, HorizonDays: 30, Demand: 10, ComputedAt: at}
	second := &domain.Forecast{ProductID: 1, HorizonDays: 30, Demand: 20, ComputedAt: at}
	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	latest, err := repo.GetLatest(context.Background(), 1, 30)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}

func TestAlertFindUnresolvedIgnoresResolved(t *testing.T) {
	repo := NewAlertRepository()

	alert := &domain.Alert{ProductID: 1, Kind: domain.AlertStockoutRisk, Message: "low"}
	require.NoError(t, repo.Insert(context.Background(), alert))
	require.NoError(t, repo.MarkResolved(context.Background(), alert.ID))

	found, err := repo.FindUnresolved(context.Background(), 1, domain.AlertStockoutRisk)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Other kinds never match.
	require.NoError(t, repo.Insert(context.Background(), &domain.Alert{
		ProductID: 1, Kind: domain.AlertOverstock, Message: "high",
	}))
	found, err = repo.FindUnresolved(context.Background(), 1, domain.AlertStockoutRisk)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAlertDistributionCountsUnresolvedOnly(t *testing.T) {
	repo := NewAlertRepository()

	resolved := &domain.Alert{ProductID: 1, Kind: domain.AlertStale}
	require.NoError(t, repo.Insert(context.Background(), resolved))
	require.NoError(t, repo.MarkResolved(context.Background(), resolved.ID))

	require.NoError(t, repo.Insert(context.Background(), &domain.Alert{ProductID: 1, Kind: domain.AlertExpired}))
	require.NoError(t, repo.Insert(context.Background(), &domain.Alert{ProductID: 2, Kind: domain.AlertExpired}))

	dist, err := repo.DistributionByKind(context.Background())
	require.NoError(t, err)
	require.Len(t, dist, 1)
	assert.Equal(t, domain.AlertExpired, dist[0].Kind)
	assert.Equal(t, 2, dist[0].Count)
}

func TestSaleDailyTotalsGroupsByUTCDate(t *testing.T) {
	repo := NewSaleRepository()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, hour := range []int{1, 12, 23} {
		require.NoError(t, repo.Insert(context.Background(), &domain.Sale{
			ProductID: 1, SoldAt: day.Add(time.Duration(hour) * time.Hour), Quantity: 2,
		}))
	}
	require.NoError(t, repo.Insert(context.Background(), &domain.Sale{
		ProductID: 1, SoldAt: day.AddDate(0, 0, 1), Quantity: 5,
	}))

	totals, err := repo.DailyTotals(context.Background(), 1, day)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, domain.DailySales{Date: "2025-06-01", Quantity: 6}, totals[0])
	assert.Equal(t, domain.DailySales{Date: "2025-06-02", Quantity: 5}, totals[1])
}

func TestProductGetByOriginIDMissingIsNil(t *testing.T) {
	repo := NewProductRepository()

	product, err := repo.GetByOriginID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, product)

	_, err = repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
