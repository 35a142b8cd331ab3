// internal/repository/memory/alert_repository.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
)

// AlertRepository provides in-memory alert storage. The mutex doubles as the
// serialization point the lookup-then-write reconciliation relies on.
type AlertRepository struct {
	mu     sync.Mutex
	nextID int64
	alerts []domain.Alert
}

func NewAlertRepository() *AlertRepository {
	return &AlertRepository{nextID: 1}
}

// Verify interface compliance
var _ repository.AlertRepository = (*AlertRepository)(nil)

func (r *AlertRepository) FindUnresolved(ctx context.Context, productID int64, kind domain.AlertKind) (*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alerts {
		a := &r.alerts[i]
		if a.ProductID == productID && a.Kind == kind && !a.Resolved {
			found := *a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *AlertRepository) Insert(ctx context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert.ID = r.nextID
	r.nextID++
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *AlertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alerts {
		if r.alerts[i].ID == alert.ID {
			r.alerts[i].Message = alert.Message
			r.alerts[i].GeneratedAt = alert.GeneratedAt
			return nil
		}
	}
	return domain.ErrAlertNotFound
}

func (r *AlertRepository) MarkResolved(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].Resolved = true
			return nil
		}
	}
	// Missing ids are a no-op so resolution stays idempotent.
	return nil
}

func (r *AlertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]domain.Alert, len(r.alerts))
	copy(all, r.alerts)
	sort.Slice(all, func(i, j int) bool { return all[i].GeneratedAt.After(all[j].GeneratedAt) })
	return all, nil
}

func (r *AlertRepository) TopUnresolved(ctx context.Context, limit int) ([]domain.Alert, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var top []domain.Alert
	for _, a := range all {
		if a.Resolved {
			continue
		}
		top = append(top, a)
		if len(top) == limit {
			break
		}
	}
	return top, nil
}

func (r *AlertRepository) DistributionByKind(ctx context.Context) ([]domain.AlertDistribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[domain.AlertKind]int)
	for _, a := range r.alerts {
		if !a.Resolved {
			counts[a.Kind]++
		}
	}

	var dist []domain.AlertDistribution
	for _, kind := range domain.AlertKinds() {
		if counts[kind] > 0 {
			dist = append(dist, domain.AlertDistribution{Kind: kind, Count: counts[kind]})
		}
	}
	return dist, nil
}
