// internal/repository/postgres/category_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

type categoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, description, active FROM categories ORDER BY name`

	var categories []domain.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.GetContext(ctx, &category,
		`SELECT id, name, description, active FROM categories WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting category %d: %w", id, err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.GetContext(ctx, &category,
		`SELECT id, name, description, active FROM categories WHERE lower(name) = lower($1)`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting category %q: %w", name, err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (name, description, active)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, category.Name, category.Description, category.Active).
		Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("error creating category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $2, description = $3, active = $4 WHERE id = $1`,
		category.ID, category.Name, category.Description, category.Active)
	if err != nil {
		return fmt.Errorf("error updating category %d: %w", category.ID, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting category %d: %w", id, err)
	}
	return nil
}
