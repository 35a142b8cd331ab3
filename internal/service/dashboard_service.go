// internal/service/dashboard_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/cache"
	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/VictorRSilva05/proactive-inventory/internal/repository"
	"github.com/rs/zerolog/log"
)

type DashboardService struct {
	dashboards repository.DashboardRepository
	alerts     repository.AlertRepository
	sales      repository.SaleRepository
	forecasts  repository.ForecastRepository
	cache      cache.DashboardCache
}

func NewDashboardService(
	dashboards repository.DashboardRepository,
	alerts repository.AlertRepository,
	sales repository.SaleRepository,
	forecasts repository.ForecastRepository,
	cacheImpl cache.DashboardCache,
) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		dashboards: dashboards,
		alerts:     alerts,
		sales:      sales,
		forecasts:  forecasts,
		cache:      cacheImpl,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	if summary, ok, err := s.cache.GetSummary(ctx); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get summary failed")
	}

	summary, err := s.dashboards.Summary(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSummary(ctx, summary); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set summary failed")
	}

	return summary, nil
}

func (s *DashboardService) TopAlerts(ctx context.Context, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.alerts.TopUnresolved(ctx, limit)
}

func (s *DashboardService) AlertDistribution(ctx context.Context) ([]domain.AlertDistribution, error) {
	dist, err := s.alerts.DistributionByKind(ctx)
	if err != nil {
		return nil, err
	}
	for i := range dist {
		dist[i].Label = dist[i].Kind.Label()
	}
	return dist, nil
}

// DemandChart merges actual daily sales with the forecasts computed on each
// day over the trailing observation window.
func (s *DashboardService) DemandChart(ctx context.Context, productID int64, days int) ([]domain.DemandChartPoint, error) {
	if days <= 0 {
		days = 90
	}
	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)

	salesByDay, err := s.sales.DailyTotals(ctx, productID, since)
	if err != nil {
		return nil, err
	}

	forecasts, err := s.forecasts.ListForProduct(ctx, productID, since)
	if err != nil {
		return nil, err
	}

	points := make(map[string]*domain.DemandChartPoint)
	var order []string

	add := func(date string) *domain.DemandChartPoint {
		if p, ok := points[date]; ok {
			return p
		}
		p := &domain.DemandChartPoint{Date: date}
		points[date] = p
		order = append(order, date)
		return p
	}

	for _, d := range salesByDay {
		add(d.Date).Sales = d.Quantity
	}
	for _, f := range forecasts {
		// Later forecasts on the same day win, matching the log semantics.
		add(f.ComputedAt.UTC().Format("2006-01-02")).Forecast = f.Demand
	}

	// ISO dates sort lexicographically.
	sort.Strings(order)

	chart := make([]domain.DemandChartPoint, 0, len(order))
	for _, date := range order {
		chart = append(chart, *points[date])
	}
	return chart, nil
}
