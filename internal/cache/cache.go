package cache

import (
	"context"
	"time"

	"cortecaja/backend/internal/domain"
)

// ReportCache holds computed daily revenue reports. Reports for past days
// are immutable, so cache hits are always safe to serve.
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.DailyRevenueReport, bool, error)
	Set(ctx context.Context, key string, value *domain.DailyRevenueReport, ttl time.Duration) error
}

type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) (*domain.DailyRevenueReport, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ *domain.DailyRevenueReport, _ time.Duration) error {
	return nil
}
