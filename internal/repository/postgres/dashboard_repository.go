// internal/repository/postgres/dashboard_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
	"github.com/shopspring/decimal"
)

// carryingCostPerUnit is a flat holding-cost estimate per stocked unit.
var carryingCostPerUnit = decimal.NewFromFloat(0.50)

type dashboardRepository struct {
	db *DB
}

func NewDashboardRepository(db *DB) repository.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	var counts struct {
		TotalProducts    int `db:"total_products"`
		TotalUnitsSold   int `db:"total_units_sold"`
		ActiveAlerts     int `db:"active_alerts"`
		StockoutProducts int `db:"stockout_products"`
		TotalStock       int `db:"total_stock"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM products) AS total_products,
			(SELECT COALESCE(SUM(quantity), 0) FROM sales) AS total_units_sold,
			(SELECT COUNT(*) FROM alerts WHERE NOT resolved) AS active_alerts,
			(SELECT COUNT(DISTINCT product_id) FROM alerts
			 WHERE kind = 'stockout_risk' AND NOT resolved) AS stockout_products,
			(SELECT COALESCE(SUM(current_stock), 0) FROM products) AS total_stock
	`

	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("error getting dashboard summary: %w", err)
	}

	summary := &domain.DashboardSummary{
		TotalProducts:  counts.TotalProducts,
		TotalUnitsSold: counts.TotalUnitsSold,
		ActiveAlerts:   counts.ActiveAlerts,
		CarryingCost:   decimal.NewFromInt(int64(counts.TotalStock)).Mul(carryingCostPerUnit),
	}

	if counts.TotalProducts > 0 {
		summary.StockoutRate = float64(counts.StockoutProducts) / float64(counts.TotalProducts) * 100
	}

	// Turnover proxy in days: stock on hand relative to yearly sales volume.
	if counts.TotalUnitsSold > 0 {
		summary.StockTurnover = float64(counts.TotalStock) / float64(counts.TotalUnitsSold) * 365
	}

	return summary, nil
}
