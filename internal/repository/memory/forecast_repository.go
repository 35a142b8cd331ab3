// internal/repository/memory/forecast_repository.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

// ForecastRepository provides in-memory forecast-log storage. Rows are only
// ever appended.
type ForecastRepository struct {
	mu        sync.RWMutex
	nextID    int64
	forecasts []domain.Forecast
}

func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{nextID: 1}
}

// Verify interface compliance
var _ repository.ForecastRepository = (*ForecastRepository)(nil)

func (r *ForecastRepository) Save(ctx context.Context, forecast *domain.Forecast) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	forecast.ID = r.nextID
	r.nextID++
	r.forecasts = append(r.forecasts, *forecast)
	return nil
}

func (r *ForecastRepository) GetLatest(ctx context.Context, productID int64, horizonDays int) (*domain.Forecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Forecast
	for i := range r.forecasts {
		f := &r.forecasts[i]
		if f.ProductID != productID || f.HorizonDays != horizonDays {
			continue
		}
		// Ties on ComputedAt resolve to the later insert.
		if latest == nil || f.ComputedAt.After(latest.ComputedAt) ||
			(f.ComputedAt.Equal(latest.ComputedAt) && f.ID > latest.ID) {
			latest = f
		}
	}
	if latest == nil {
		return nil, nil
	}
	found := *latest
	return &found, nil
}

func (r *ForecastRepository) ListForProduct(ctx context.Context, productID int64, since time.Time) ([]domain.Forecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []domain.Forecast
	for _, f := range r.forecasts {
		if f.ProductID == productID && !f.ComputedAt.Before(since) {
			matches = append(matches, f)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ComputedAt.Before(matches[j].ComputedAt) })
	return matches, nil
}

func (r *ForecastRepository) List(ctx context.Context) ([]domain.Forecast, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Forecast, len(r.forecasts))
	copy(all, r.forecasts)
	sort.Slice(all, func(i, j int) bool { return all[i].ComputedAt.After(all[j].ComputedAt) })
	return all, nil
}
