// internal/repository/memory/product_repository.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

// ProductRepository provides in-memory product storage.
type ProductRepository struct {
	mu       sync.RWMutex
	nextID   int64
	products map[int64]domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{nextID: 1, products: make(map[int64]domain.Product)}
}

// Verify interface compliance
var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sortProductsByID(products)
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) GetByOriginID(ctx context.Context, originID int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.OriginID == originID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	var matches []domain.Product
	for _, p := range r.products {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			(p.Barcode != nil && strings.Contains(strings.ToLower(*p.Barcode), term)) ||
			strings.Contains(strings.ToLower(p.CategoryName), term) {
			matches = append(matches, p)
		}
	}
	sortProductsByID(matches)
	return matches, nil
}

func sortProductsByID(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
}
