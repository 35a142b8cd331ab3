// internal/repository/memory/sale_repository.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

// SaleRepository provides in-memory, append-only sale storage.
type SaleRepository struct {
	mu     sync.RWMutex
	nextID int64
	sales  []domain.Sale
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{nextID: 1}
}

// Verify interface compliance
var _ repository.SaleRepository = (*SaleRepository)(nil)

func (r *SaleRepository) GetSalesSince(ctx context.Context, productID int64, since time.Time) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []domain.Sale
	for _, s := range r.sales {
		if s.ProductID == productID && !s.SoldAt.Before(since) {
			matches = append(matches, s)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].SoldAt.Before(matches[j].SoldAt) })
	return matches, nil
}

func (r *SaleRepository) GetLatestSale(ctx context.Context, productID int64) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Sale
	for i := range r.sales {
		s := &r.sales[i]
		if s.ProductID != productID {
			continue
		}
		if latest == nil || s.SoldAt.After(latest.SoldAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	found := *latest
	return &found, nil
}

func (r *SaleRepository) Insert(ctx context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sale.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *SaleRepository) ExistsForProduct(ctx context.Context, productID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sales {
		if s.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *SaleRepository) DailyTotals(ctx context.Context, productID int64, since time.Time) ([]domain.DailySales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[string]int)
	for _, s := range r.sales {
		if s.ProductID == productID && !s.SoldAt.Before(since) {
			totals[s.SoldAt.UTC().Format("2006-01-02")] += s.Quantity
		}
	}

	days := make([]domain.DailySales, 0, len(totals))
	for date, qty := range totals {
		days = append(days, domain.DailySales{Date: date, Quantity: qty})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}
