// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
)

// ProductRepository persists products. The forecast and alert cores treat
// products as read-only.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByOriginID(ctx context.Context, originID int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]domain.Product, error)
}

// CategoryRepository persists product categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

// SaleRepository provides the append-only sale history.
type SaleRepository interface {
	// GetSalesSince returns the product's sales with sold_at >= since,
	// ordered by sold_at ascending.
	GetSalesSince(ctx context.Context, productID int64, since time.Time) ([]domain.Sale, error)
	// GetLatestSale returns the most recent sale, or nil when the product
	// has never sold.
	GetLatestSale(ctx context.Context, productID int64) (*domain.Sale, error)
	Insert(ctx context.Context, sale *domain.Sale) error
	ExistsForProduct(ctx context.Context, productID int64) (bool, error)
	// DailyTotals aggregates sold quantity per UTC day since the given
	// instant, ordered by day ascending.
	DailyTotals(ctx context.Context, productID int64, since time.Time) ([]domain.DailySales, error)
}

// ForecastRepository persists the forecast log. Rows are never updated.
type ForecastRepository interface {
	Save(ctx context.Context, forecast *domain.Forecast) error
	// GetLatest returns the most recently computed forecast with exactly the
	// given horizon, or nil when none exists.
	GetLatest(ctx context.Context, productID int64, horizonDays int) (*domain.Forecast, error)
	ListForProduct(ctx context.Context, productID int64, since time.Time) ([]domain.Forecast, error)
	List(ctx context.Context) ([]domain.Forecast, error)
}

// AlertRepository persists alerts and enforces the at-most-one-unresolved
// invariant per (product, kind).
type AlertRepository interface {
	// FindUnresolved returns the unresolved alert for (product, kind), or
	// nil when none exists. Resolved rows are never returned.
	FindUnresolved(ctx context.Context, productID int64, kind domain.AlertKind) (*domain.Alert, error)
	Insert(ctx context.Context, alert *domain.Alert) error
	// Update rewrites message and generated_at of an existing row in place.
	Update(ctx context.Context, alert *domain.Alert) error
	// MarkResolved sets resolved=true; missing ids are a no-op.
	MarkResolved(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Alert, error)
	TopUnresolved(ctx context.Context, limit int) ([]domain.Alert, error)
	DistributionByKind(ctx context.Context) ([]domain.AlertDistribution, error)
}

// DashboardRepository serves the aggregate queries behind the dashboard.
type DashboardRepository interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}
