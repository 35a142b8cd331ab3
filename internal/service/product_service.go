// internal/service/product_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

// ProductService owns product CRUD. Mutations that can change alert-relevant
// facts notify the ingestion trigger before returning.
type ProductService struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	notifier Notifier
}

func NewProductService(products repository.ProductRepository, sales repository.SaleRepository, notifier Notifier) *ProductService {
	return &ProductService{products: products, sales: sales, notifier: notifier}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.fillLastSaleDates(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	last, err := s.sales.GetLatestSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if last != nil {
		product.LastSaleAt = &last.SoldAt
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	return s.notifier.OnInventoryOrSalesChanged(ctx, product.ID)
}

func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	// Stock edits can flip stockout/overstock conditions.
	return s.notifier.OnInventoryOrSalesChanged(ctx, product.ID)
}

// Delete removes a product without recorded sales. Products with sale history
// are kept for the audit trail.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	hasSales, err := s.sales.ExistsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if hasSales {
		return domain.ErrProductHasSales
	}
	return s.products.Delete(ctx, id)
}

// ListSales returns the product's sale history over the trailing window.
func (s *ProductService) ListSales(ctx context.Context, productID int64, days int) ([]domain.Sale, error) {
	if days <= 0 {
		days = 90
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	return s.sales.GetSalesSince(ctx, productID, since)
}

func (s *ProductService) Search(ctx context.Context, term string) ([]domain.Product, error) {
	products, err := s.products.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if err := s.fillLastSaleDates(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) fillLastSaleDates(ctx context.Context, products []domain.Product) error {
	for i := range products {
		last, err := s.sales.GetLatestSale(ctx, products[i].ID)
		if err != nil {
			return fmt.Errorf("last sale for product %d: %w", products[i].ID, err)
		}
		if last != nil {
			products[i].LastSaleAt = &last.SoldAt
		}
	}
	return nil
}
