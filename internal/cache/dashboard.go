package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VictorRSilva05/proactive-inventory/internal/config"
	"github.com/VictorRSilva05/proactive-inventory/internal/domain"
	"github.com/redis/go-redis/v9"
)

const dashboardSummaryKey = "dashboard:summary"

// DashboardCache caches the dashboard summary between write bursts. The
// ingestion trigger invalidates it after every sweep.
type DashboardCache interface {
	GetSummary(ctx context.Context) (*domain.DashboardSummary, bool, error)
	SetSummary(ctx context.Context, summary *domain.DashboardSummary) error
	InvalidateSummary(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) GetSummary(ctx context.Context) (*domain.DashboardSummary, bool, error) {
	payload, err := c.client.Get(ctx, dashboardSummaryKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode dashboard summary cache: %w", err)
	}

	return &summary, true, nil
}

func (c *redisDashboardCache) SetSummary(ctx context.Context, summary *domain.DashboardSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode dashboard summary cache: %w", err)
	}

	if err := c.client.Set(ctx, dashboardSummaryKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateSummary(ctx context.Context) error {
	return c.client.Del(ctx, dashboardSummaryKey).Err()
}

func (n *noopDashboardCache) GetSummary(ctx context.Context) (*domain.DashboardSummary, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) SetSummary(ctx context.Context, summary *domain.DashboardSummary) error {
	return nil
}

func (n *noopDashboardCache) InvalidateSummary(ctx context.Context) error {
	return nil
}
