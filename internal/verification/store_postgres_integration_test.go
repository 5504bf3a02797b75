//go:build integration

package verification_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/ClementJar/IDV-sub000/internal/verification"
	"github.com/ClementJar/IDV-sub000/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	records  *verification.PostgresSourceStore
	attempts *verification.PostgresAttemptStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.records = verification.NewPostgresSourceStore(s.postgres.DB)
	s.attempts = verification.NewPostgresAttemptStore(s.postgres.DB)

	ctx := context.Background()
	s.Require().NoError(s.records.EnsureSchema(ctx))
	s.Require().NoError(s.attempts.EnsureSchema(ctx))
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "source_records", "verification_attempts")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestLoadAndFindByIDAndSource() {
	ctx := context.Background()
	s.Require().NoError(s.records.Load(ctx, verification.SeedRecords()...))

	record, err := s.records.FindByIDAndSource(ctx, "221151/61/1", verification.SourceINRIS)
	s.Require().NoError(err)
	s.Equal("Mary Banda", record.FullName)

	_, err = s.records.FindByIDAndSource(ctx, "221151/61/1", verification.SourceZRA)
	s.ErrorIs(err, verification.ErrNotFound)
}

func (s *PostgresStoreSuite) TestLoadIsIdempotent() {
	ctx := context.Background()
	seed := verification.SeedRecords()
	s.Require().NoError(s.records.Load(ctx, seed...))
	s.Require().NoError(s.records.Load(ctx, seed...))

	all, err := s.records.ListAll(ctx)
	s.Require().NoError(err)
	s.Len(all, len(seed))
}

func (s *PostgresStoreSuite) TestSearchByIDNumberContains() {
	ctx := context.Background()
	s.Require().NoError(s.records.Load(ctx, verification.SeedRecords()...))

	matches, err := s.records.SearchByIDNumber(ctx, "ZN")
	s.Require().NoError(err)
	s.Require().Len(matches, 2)
	s.Equal("ZN184392", matches[0].IDNumber)
	s.Equal("ZN559301", matches[1].IDNumber)
}

func (s *PostgresStoreSuite) TestAttemptAggregates() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	record := func(status verification.AttemptStatus, ms int64) {
		s.Require().NoError(s.attempts.Append(ctx, verification.VerificationAttempt{
			ID:             uuid.NewString(),
			UserID:         "user-1",
			IDNumber:       "221151/61/1",
			SearchedAt:     now,
			Status:         status,
			ResultCount:    1,
			ResponseTimeMs: ms,
			SourceSystem:   verification.SourceINRIS,
		}))
	}
	record(verification.AttemptFound, 100)
	record(verification.AttemptFound, 300)
	record(verification.AttemptNotFound, 50)

	count, err := s.attempts.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), count)

	byStatus, err := s.attempts.CountByStatus(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), byStatus[verification.AttemptFound])
	s.Equal(int64(1), byStatus[verification.AttemptNotFound])

	avg, err := s.attempts.AverageResponseTimeMs(ctx)
	s.Require().NoError(err)
	s.InDelta(150.0, avg, 0.001)
}

func (s *PostgresStoreSuite) TestAverageOnEmptyLog() {
	avg, err := s.attempts.AverageResponseTimeMs(context.Background())
	s.Require().NoError(err)
	s.Zero(avg)
}
