// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	p.id, p.name, p.barcode, p.category_id, c.name AS category_name,
	p.avg_unit_price, p.expires_at, p.current_stock, p.origin_id
`

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.id
	`

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting product %d: %w", id, err)
	}
	return &product, nil
}

func (r *productRepository) GetByOriginID(ctx context.Context, originID int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.origin_id = $1
	`

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, originID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting product by origin id %d: %w", originID, err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, barcode, category_id, avg_unit_price, expires_at, current_stock, origin_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Barcode, product.CategoryID, product.AvgUnitPrice,
		product.ExpiresAt, product.CurrentStock, product.OriginID,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("error creating product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, barcode = $3, category_id = $4, avg_unit_price = $5,
		    expires_at = $6, current_stock = $7
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Barcode, product.CategoryID,
		product.AvgUnitPrice, product.ExpiresAt, product.CurrentStock,
	)
	if err != nil {
		return fmt.Errorf("error updating product %d: %w", product.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting product %d: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.name ILIKE $1
		   OR p.barcode ILIKE $1
		   OR c.name ILIKE $1
		ORDER BY p.id
	`

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("error searching products: %w", err)
	}
	return products, nil
}
