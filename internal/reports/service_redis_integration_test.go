//go:build integration

package reports_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementJar/IDV-sub000/internal/clients"
	platformredis "github.com/ClementJar/IDV-sub000/internal/platform/redis"
	"github.com/ClementJar/IDV-sub000/internal/reports"
	"github.com/ClementJar/IDV-sub000/internal/verification"
	"github.com/ClementJar/IDV-sub000/pkg/testutil/containers"
)

func TestDashboardServesCachedCopy(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	redis := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, redis.FlushAll(ctx))

	attempts := verification.NewInMemoryAttemptStore()
	clientStore := clients.NewInMemoryStore()
	cache := &platformredis.Client{Client: redis.Client}
	service := reports.NewService(attempts, clientStore, cache, time.Minute, slog.New(slog.DiscardHandler))

	first, err := service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Zero(t, first.TotalSearches)

	// New attempts do not show up until the cached copy expires.
	require.NoError(t, attempts.Append(ctx, verification.VerificationAttempt{Status: verification.AttemptFound, ResponseTimeMs: 50}))

	second, err := service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.TotalSearches)

	require.NoError(t, redis.FlushAll(ctx))

	third, err := service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), third.TotalSearches)
}
