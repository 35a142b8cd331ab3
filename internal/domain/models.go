// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products for dashboards and CSV imports
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Active      bool   `json:"active" db:"active"`
}

// Product represents a tracked inventory item. CurrentStock and identity are
// owned by the CRUD/import surfaces; the forecast and alert cores only read
// products.
type Product struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Barcode      *string         `json:"barcode,omitempty" db:"barcode"`
	CategoryID   int64           `json:"category_id" db:"category_id"`
	CategoryName string          `json:"category_name,omitempty" db:"category_name"`
	AvgUnitPrice decimal.Decimal `json:"avg_unit_price" db:"avg_unit_price"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty" db:"expires_at"`
	CurrentStock int             `json:"current_stock" db:"current_stock"`
	OriginID     int64           `json:"origin_id" db:"origin_id"`
	LastSaleAt   *time.Time      `json:"last_sale_at,omitempty" db:"-"`
}

// Sale is a single sale event. Timestamps are UTC; rows are append-only.
type Sale struct {
	ID          int64           `json:"id" db:"id"`
	ProductID   int64           `json:"product_id" db:"product_id"`
	SoldAt      time.Time       `json:"sold_at" db:"sold_at"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty" db:"expires_at"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Supplier    *string         `json:"supplier,omitempty" db:"supplier"`
	StockAtSale *int            `json:"stock_at_sale,omitempty" db:"stock_at_sale"`
}

// Forecast is one computed demand estimate. Forecasts accumulate as a log;
// the current one for a horizon is the most recently computed row with that
// exact horizon.
type Forecast struct {
	ID              int64           `json:"id" db:"id"`
	ProductID       int64           `json:"product_id" db:"product_id"`
	ProductName     string          `json:"product_name,omitempty" db:"product_name"`
	ObservationDays int             `json:"observation_days" db:"observation_days"`
	HorizonDays     int             `json:"horizon_days" db:"horizon_days"`
	MeanQuantity    decimal.Decimal `json:"mean_quantity" db:"mean_quantity"`
	Demand          int             `json:"demand" db:"demand"`
	ComputedAt      time.Time       `json:"computed_at" db:"computed_at"`
}

// Alert is a persistent operational alert. At most one unresolved alert may
// exist per (product, kind); resolved rows are history and are never reopened.
type Alert struct {
	ID          int64     `json:"id" db:"id"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name,omitempty" db:"product_name"`
	Kind        AlertKind `json:"kind" db:"kind"`
	Message     string    `json:"message" db:"message"`
	GeneratedAt time.Time `json:"generated_at" db:"generated_at"`
	Resolved    bool      `json:"resolved" db:"resolved"`
}

// AlertDistribution is the per-kind count of unresolved alerts.
type AlertDistribution struct {
	Kind  AlertKind `json:"kind" db:"kind"`
	Label string    `json:"label" db:"-"`
	Count int       `json:"count" db:"count"`
}

// DailySales is one day of aggregated sold quantity, used for chart data.
type DailySales struct {
	Date     string `json:"date" db:"date"`
	Quantity int    `json:"quantity" db:"quantity"`
}

// DemandChartPoint pairs actual daily sales with the forecast computed that day.
type DemandChartPoint struct {
	Date     string `json:"date"`
	Sales    int    `json:"sales"`
	Forecast int    `json:"forecast"`
}

// DashboardSummary is the aggregate view shown on the landing dashboard.
type DashboardSummary struct {
	TotalProducts  int             `json:"total_products"`
	TotalUnitsSold int             `json:"total_units_sold"`
	ActiveAlerts   int             `json:"active_alerts"`
	StockoutRate   float64         `json:"stockout_rate"`
	StockTurnover  float64         `json:"stock_turnover_days"`
	CarryingCost   decimal.Decimal `json:"carrying_cost"`
}
