package reports

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ClementJar/IDV-sub000/internal/clients"
	"github.com/ClementJar/IDV-sub000/internal/platform/redis"
	"github.com/ClementJar/IDV-sub000/internal/verification"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

const dashboardCacheKey = "reports:dashboard"

// Service assembles the operator dashboard from the attempt log and the
// client register, with a short-lived Redis cache in front.
type Service struct {
	attempts verification.AttemptStore
	clients  clients.Store
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewService(attempts verification.AttemptStore, clientStore clients.Store, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		attempts: attempts,
		clients:  clientStore,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Dashboard returns the aggregated snapshot, serving a cached copy when one
// is fresh. Cache failures degrade to a direct read.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	dashboard, err := s.assemble(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, dashboard)
	return dashboard, nil
}

func (s *Service) assemble(ctx context.Context) (*Dashboard, error) {
	totalClients, err := s.clients.Count(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "count clients", err)
	}
	clientsBySource, err := s.clients.CountBySource(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "count clients by source", err)
	}
	totalSearches, err := s.attempts.Count(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "count searches", err)
	}
	byStatus, err := s.attempts.CountByStatus(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "count searches by status", err)
	}
	avgMs, err := s.attempts.AverageResponseTimeMs(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "average response time", err)
	}

	searchesByStatus := make(map[string]int64, len(byStatus))
	for status, count := range byStatus {
		searchesByStatus[string(status)] = count
	}

	return &Dashboard{
		TotalClients:          totalClients,
		TotalSearches:         totalSearches,
		SearchesByStatus:      searchesByStatus,
		AverageResponseTimeMs: avgMs,
		ClientsBySource:       clientsBySource,
		GeneratedAt:           requestcontext.Now(ctx).UTC(),
	}, nil
}

func (s *Service) fromCache(ctx context.Context) *Dashboard {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			s.logger.WarnContext(ctx, "dashboard cache read failed", "error", err)
		}
		return nil
	}
	var dashboard Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache entry corrupt", "error", err)
		return nil
	}
	return &dashboard
}

func (s *Service) toCache(ctx context.Context, dashboard *Dashboard) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache write failed", "error", err)
	}
}
