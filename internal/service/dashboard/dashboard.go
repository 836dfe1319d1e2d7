// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"insurtrack/internal/domain/dashboard"
	"insurtrack/internal/domain/insurance"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const statsCacheKey = "dashboard:stats"

// Repository computes the aggregate counters.
type Repository interface {
	Stats(ctx context.Context, from, to insurance.Date) (*dashboard.Stats, error)
}

// DashboardService serves the read-only dashboard counters. When a Redis
// client is configured the counters are cached for cacheTTL, sized to the
// UI's 30 second polling cadence; a nil client disables caching.
type DashboardService struct {
	repo        Repository
	cache       *redis.Client
	cacheTTL    time.Duration
	renewalDays int
	logger      *zap.Logger
}

func NewDashboardService(repo Repository, cache *redis.Client, cacheTTL time.Duration, renewalDays int, logger *zap.Logger) *DashboardService {
	if renewalDays <= 0 {
		renewalDays = 30
	}
	return &DashboardService{
		repo:        repo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		renewalDays: renewalDays,
		logger:      logger,
	}
}

// Stats returns the aggregate counters, from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	today := insurance.DateOf(time.Now())
	end := insurance.DateOf(today.AddDate(0, 0, s.renewalDays))

	stats, err := s.repo.Stats(ctx, today, end)
	if err != nil {
		s.logger.Error("failed to compute dashboard stats", zap.Error(err))
		return nil, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *dashboard.Stats {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil
	}

	var stats dashboard.Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("stats cache entry malformed", zap.Error(err))
		return nil
	}
	return &stats
}

func (s *DashboardService) toCache(ctx context.Context, stats *dashboard.Stats) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
