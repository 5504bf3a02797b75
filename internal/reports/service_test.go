package reports_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementJar/IDV-sub000/internal/clients"
	"github.com/ClementJar/IDV-sub000/internal/reports"
	"github.com/ClementJar/IDV-sub000/internal/verification"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

func newDashboardFixture(t *testing.T) (*reports.Service, *verification.InMemoryAttemptStore, *clients.InMemoryStore) {
	t.Helper()
	attempts := verification.NewInMemoryAttemptStore()
	clientStore := clients.NewInMemoryStore()
	service := reports.NewService(attempts, clientStore, nil, 30*time.Second, slog.New(slog.DiscardHandler))
	return service, attempts, clientStore
}

func TestDashboard_EmptyState(t *testing.T) {
	service, _, _ := newDashboardFixture(t)

	dashboard, err := service.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Zero(t, dashboard.TotalClients)
	assert.Zero(t, dashboard.TotalSearches)
	assert.Zero(t, dashboard.AverageResponseTimeMs)
	assert.Empty(t, dashboard.SearchesByStatus)
	assert.Empty(t, dashboard.ClientsBySource)
}

func TestDashboard_Aggregates(t *testing.T) {
	service, attempts, clientStore := newDashboardFixture(t)
	ctx := context.Background()

	require.NoError(t, attempts.Append(ctx, verification.VerificationAttempt{Status: verification.AttemptFound, ResponseTimeMs: 100}))
	require.NoError(t, attempts.Append(ctx, verification.VerificationAttempt{Status: verification.AttemptNotFound, ResponseTimeMs: 300}))
	require.NoError(t, clientStore.Create(ctx, clients.Client{
		ID:           "c-1",
		IDNumber:     "221151/61/1",
		SourceSystem: "INRIS",
		CreatedAt:    time.Now().UTC(),
	}))

	dashboard, err := service.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), dashboard.TotalClients)
	assert.Equal(t, int64(2), dashboard.TotalSearches)
	assert.Equal(t, int64(1), dashboard.SearchesByStatus["Found"])
	assert.Equal(t, int64(1), dashboard.SearchesByStatus["NotFound"])
	assert.InDelta(t, 200.0, dashboard.AverageResponseTimeMs, 0.001)
	assert.Equal(t, int64(1), dashboard.ClientsBySource["INRIS"])
}

func TestDashboard_GeneratedAtFollowsRequestTime(t *testing.T) {
	service, _, _ := newDashboardFixture(t)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	dashboard, err := service.Dashboard(requestcontext.WithTime(context.Background(), at))

	require.NoError(t, err)
	assert.Equal(t, at, dashboard.GeneratedAt)
}
