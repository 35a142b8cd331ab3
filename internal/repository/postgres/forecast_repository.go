// internal/repository/postgres/forecast_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) repository.ForecastRepository {
	return &forecastRepository{db: db}
}

func (r *forecastRepository) Save(ctx context.Context, forecast *domain.Forecast) error {
	query := `
		INSERT INTO forecasts (product_id, observation_days, horizon_days, mean_quantity, demand, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		forecast.ProductID, forecast.ObservationDays, forecast.HorizonDays,
		forecast.MeanQuantity, forecast.Demand, forecast.ComputedAt,
	).Scan(&forecast.ID)
	if err != nil {
		return fmt.Errorf("error saving forecast: %w", err)
	}
	return nil
}

func (r *forecastRepository) GetLatest(ctx context.Context, productID int64, horizonDays int) (*domain.Forecast, error) {
	query := `
		SELECT id, product_id, observation_days, horizon_days, mean_quantity, demand, computed_at
		FROM forecasts
		WHERE product_id = $1 AND horizon_days = $2
		ORDER BY computed_at DESC, id DESC
		LIMIT 1
	`

	var forecast domain.Forecast
	err := r.db.GetContext(ctx, &forecast, query, productID, horizonDays)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting latest forecast for product %d: %w", productID, err)
	}
	return &forecast, nil
}

func (r *forecastRepository) ListForProduct(ctx context.Context, productID int64, since time.Time) ([]domain.Forecast, error) {
	query := `
		SELECT id, product_id, observation_days, horizon_days, mean_quantity, demand, computed_at
		FROM forecasts
		WHERE product_id = $1 AND computed_at >= $2
		ORDER BY computed_at ASC
	`

	var forecasts []domain.Forecast
	if err := r.db.SelectContext(ctx, &forecasts, query, productID, since); err != nil {
		return nil, fmt.Errorf("error listing forecasts for product %d: %w", productID, err)
	}
	return forecasts, nil
}

func (r *forecastRepository) List(ctx context.Context) ([]domain.Forecast, error) {
	query := `
		SELECT f.id, f.product_id, p.name AS product_name, f.observation_days,
		       f.horizon_days, f.mean_quantity, f.demand, f.computed_at
		FROM forecasts f
		JOIN products p ON p.id = f.product_id
		ORDER BY f.computed_at DESC
	`

	var forecasts []domain.Forecast
	if err := r.db.SelectContext(ctx, &forecasts, query); err != nil {
		return nil, fmt.Errorf("error listing forecasts: %w", err)
	}
	return forecasts, nil
}
