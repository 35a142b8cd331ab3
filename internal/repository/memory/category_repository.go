// internal/repository/memory/category_repository.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

// CategoryRepository provides in-memory category storage.
type CategoryRepository struct {
	mu         sync.RWMutex
	nextID     int64
	categories map[int64]domain.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{nextID: 1, categories: make(map[int64]domain.Category)}
}

// Verify interface compliance
var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	category.ID = r.nextID
	r.nextID++
	r.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, id)
	return nil
}
