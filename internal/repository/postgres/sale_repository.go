// internal/repository/postgres/sale_repository.go
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

type saleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) GetSalesSince(ctx context.Context, productID int64, since time.Time) ([]domain.Sale, error) {
	query := `
		SELECT id, product_id, sold_at, expires_at, quantity, unit_price, supplier, stock_at_sale
		FROM sales
		WHERE product_id = $1 AND sold_at >= $2
		ORDER BY sold_at ASC
	`

	var sales []domain.Sale
	if err := r.db.SelectContext(ctx, &sales, query, productID, since); err != nil {
		return nil, fmt.Errorf("error getting sales for product %d: %w", productID, err)
	}
	return sales, nil
}

func (r *saleRepository) GetLatestSale(ctx context.Context, productID int64) (*domain.Sale, error) {
	query := `
		SELECT id, product_id, sold_at, expires_at, quantity, unit_price, supplier, stock_at_sale
		FROM sales
		WHERE product_id = $1
		ORDER BY sold_at DESC
		LIMIT 1
	`

	var sale domain.Sale
	err := r.db.GetContext(ctx, &sale, query, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting latest sale for product %d: %w", productID, err)
	}
	return &sale, nil
}

func (r *saleRepository) Insert(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (product_id, sold_at, expires_at, quantity, unit_price, supplier, stock_at_sale)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		sale.ProductID, sale.SoldAt, sale.ExpiresAt, sale.Quantity,
		sale.UnitPrice, sale.Supplier, sale.StockAtSale,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("error inserting sale: %w", err)
	}
	return nil
}

func (r *saleRepository) ExistsForProduct(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM sales WHERE product_id = $1)`, productID)
	if err != nil {
		return false, fmt.Errorf("error checking sales for product %d: %w", productID, err)
	}
	return exists, nil
}

func (r *saleRepository) DailyTotals(ctx context.Context, productID int64, since time.Time) ([]domain.DailySales, error) {
	query := `
		SELECT to_char(date_trunc('day', sold_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS date,
		       SUM(quantity) AS quantity
		FROM sales
		WHERE product_id = $1 AND sold_at >= $2
		GROUP BY 1
		ORDER BY 1
	`

	var totals []domain.DailySales
	if err := r.db.SelectContext(ctx, &totals, query, productID, since); err != nil {
		return nil, fmt.Errorf("error getting daily sales for product %d: %w", productID, err)
	}
	return totals, nil
}
