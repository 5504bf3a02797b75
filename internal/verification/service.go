package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ClementJar/IDV-sub000/internal/verification/metrics"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
	"github.com/ClementJar/IDV-sub000/pkg/platform/audit"
	"github.com/ClementJar/IDV-sub000/pkg/requestcontext"
)

// maxTestIDs caps the available-test-ids listing.
const maxTestIDs = 20

// AttemptPublisher mirrors attempt outcomes to the async audit pipeline.
// A nil publisher disables mirroring.
type AttemptPublisher interface {
	Publish(event audit.Event)
}

// Config wires the verification service's collaborators. Records and
// Attempts are required; everything else has a working default.
type Config struct {
	Sources    []SourceDescriptor
	Records    SourceRecordStore
	Attempts   AttemptStore
	Registered RegisteredIDStore
	Latency    LatencySimulator
	Publisher  AttemptPublisher
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

// Service executes identity verification searches against the mock sources
// and records one attempt row per call.
type Service struct {
	sources    []SourceDescriptor
	records    SourceRecordStore
	attempts   AttemptStore
	registered RegisteredIDStore
	latency    LatencySimulator
	publisher  AttemptPublisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     oteltrace.Tracer
}

func NewService(cfg Config) *Service {
	sources := cfg.Sources
	if sources == nil {
		sources = SourcesByPriority()
	}
	latency := cfg.Latency
	if latency == nil {
		latency = NoLatency{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sources:    sources,
		records:    cfg.Records,
		attempts:   cfg.Attempts,
		registered: cfg.Registered,
		latency:    latency,
		publisher:  cfg.Publisher,
		logger:     logger,
		metrics:    cfg.Metrics,
		tracer:     otel.Tracer("verification"),
	}
}

// SearchMultipleSources walks the registered sources in priority order,
// stopping at the first match. Every source gets a trace entry with a
// terminal status; a single source failure is recorded in its entry and the
// walk continues. Exactly one attempt row is written per call: at the moment
// of a match, or once after exhausting every source.
//
// idNumber must arrive already URL-decoded; the HTTP layer owns unescaping.
func (s *Service) SearchMultipleSources(ctx context.Context, idNumber, userID string) *MultiSourceResult {
	searchStart := time.Now()
	tr := newTrace(s.sources)

	var found *SourceRecord
	var foundIdx int
	var matchElapsedMs int64
	var totalMs int64

	for i, src := range s.sources {
		tr.begin(i)

		record, elapsed, err := s.probe(ctx, idNumber, src)
		elapsedMs := elapsed.Milliseconds()
		totalMs += elapsedMs

		switch {
		case err == nil:
			tr.found(i, elapsedMs, record)
			found = record
			foundIdx = i
			matchElapsedMs = elapsedMs
		case errors.Is(err, ErrNotFound):
			tr.notFound(i, elapsedMs)
		default:
			// Partial failure: this source is down, the others may not be.
			tr.fail(i, elapsedMs, err.Error())
			s.logger.WarnContext(ctx, "source probe failed",
				"request_id", requestcontext.RequestID(ctx),
				"source", src.Name,
				"error", err,
			)
		}

		if found != nil {
			break
		}
	}

	var attempt VerificationAttempt
	overall := AttemptNotFound
	if found != nil {
		overall = AttemptFound
		tr.skipFrom(foundIdx + 1)
		attempt = s.newAttempt(ctx, userID, idNumber, AttemptFound, 1, matchElapsedMs, found.SourceName)
	} else {
		attempt = s.newAttempt(ctx, userID, idNumber, AttemptNotFound, 0, totalMs, AggregateSource)
	}
	s.recordAttempt(ctx, attempt)

	s.metrics.IncrementOutcome("multi_source", string(overall))
	s.metrics.ObserveSearchLatency(time.Since(searchStart))

	return &MultiSourceResult{
		Success:             found != nil,
		IDNumber:            idNumber,
		SourceResults:       tr.results(),
		FinalResult:         found,
		TotalResponseTimeMs: totalMs,
		OverallStatus:       overall,
	}
}

// probe performs one timed lookup against one source.
func (s *Service) probe(ctx context.Context, idNumber string, src SourceDescriptor) (*SourceRecord, time.Duration, error) {
	ctx, span := s.tracer.Start(ctx, "verification.probe", oteltrace.WithAttributes(
		attribute.String("source", src.Name),
		attribute.Int("priority", src.Priority),
	))
	defer span.End()

	start := time.Now()
	record, err := s.records.FindByIDAndSource(ctx, idNumber, src.Name)
	elapsed := time.Since(start)

	s.metrics.ObserveProbeLatency(src.Name, elapsed)
	return record, elapsed, err
}

// Verify is the legacy single-path search: one contains-match query across
// all sources at once, no per-source breakdown, no short-circuit. Unlike the
// multi-source path a store failure here is a hard error to the caller.
func (s *Service) Verify(ctx context.Context, idNumber, userID string) (*VerificationSummary, error) {
	start := time.Now()
	s.latency.Wait(ctx)

	matches, err := s.records.SearchByIDNumber(ctx, idNumber)
	if err != nil {
		s.metrics.IncrementOutcome("single", string(AttemptError))
		return nil, dErrors.Wrap(dErrors.CodeInternal, "verification lookup failed", err)
	}
	elapsedMs := time.Since(start).Milliseconds()

	status := AttemptNotFound
	switch {
	case len(matches) == 1:
		status = AttemptFound
	case len(matches) > 1:
		status = AttemptMultiple
	}

	attempt := s.newAttempt(ctx, userID, idNumber, status, len(matches), elapsedMs, AggregateSource)
	if err := s.attempts.Append(ctx, attempt); err != nil {
		s.metrics.IncrementOutcome("single", string(AttemptError))
		return nil, dErrors.Wrap(dErrors.CodeInternal, "record verification attempt", err)
	}
	s.publish(ctx, attempt)
	s.metrics.IncrementOutcome("single", string(status))

	return &VerificationSummary{
		Success:        len(matches) > 0,
		Status:         status,
		ResultCount:    len(matches),
		ResponseTimeMs: elapsedMs,
		Source:         AggregateSource,
		Matches:        matches,
	}, nil
}

// AvailableTestIDs lists seeded identities not yet claimed by a registered
// client: one representative per (ID type, source) group, capped, sorted by
// (source, ID number). Pure read.
func (s *Service) AvailableTestIDs(ctx context.Context) ([]TestID, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list source records", err)
	}

	taken := map[string]struct{}{}
	if s.registered != nil {
		taken, err = s.registered.RegisteredIDNumbers(ctx)
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodeInternal, "list registered clients", err)
		}
	}

	type groupKey struct {
		idType IDType
		source string
	}
	seen := make(map[groupKey]struct{})
	var out []TestID
	for _, record := range records {
		if _, ok := taken[record.IDNumber]; ok {
			continue
		}
		key := groupKey{idType: record.IDType, source: record.SourceName}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, TestID{
			IDNumber:      record.IDNumber,
			FullName:      record.FullName,
			Source:        record.SourceName,
			DisplaySource: DisplayNameFor(record.SourceName),
		})
		if len(out) == maxTestIDs {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].IDNumber < out[j].IDNumber
	})
	return out, nil
}

func (s *Service) newAttempt(ctx context.Context, userID, idNumber string, status AttemptStatus, resultCount int, responseTimeMs int64, sourceSystem string) VerificationAttempt {
	return VerificationAttempt{
		ID:             uuid.NewString(),
		UserID:         userID,
		IDNumber:       idNumber,
		SearchedAt:     requestcontext.Now(ctx).UTC(),
		Status:         status,
		ResultCount:    resultCount,
		ResponseTimeMs: responseTimeMs,
		SourceSystem:   sourceSystem,
	}
}

// recordAttempt persists the terminal attempt row. The multi-source search
// still returns its trace when the append fails; the caller already has the
// answer and the failure is an operational problem, not a search outcome.
func (s *Service) recordAttempt(ctx context.Context, attempt VerificationAttempt) {
	if err := s.attempts.Append(ctx, attempt); err != nil {
		s.logger.ErrorContext(ctx, "append verification attempt failed",
			"request_id", requestcontext.RequestID(ctx),
			"attempt_id", attempt.ID,
			"error", err,
		)
		return
	}
	s.publish(ctx, attempt)
}

func (s *Service) publish(ctx context.Context, attempt VerificationAttempt) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(audit.Event{
		ID:             attempt.ID,
		Timestamp:      attempt.SearchedAt,
		UserID:         attempt.UserID,
		IDNumber:       attempt.IDNumber,
		Status:         string(attempt.Status),
		ResultCount:    attempt.ResultCount,
		ResponseTimeMs: attempt.ResponseTimeMs,
		SourceSystem:   attempt.SourceSystem,
		RequestID:      requestcontext.RequestID(ctx),
		ClientIP:       requestcontext.ClientIP(ctx),
		UserAgent:      requestcontext.UserAgent(ctx),
	})
}

// String renders a short description for logs.
func (a VerificationAttempt) String() string {
	return fmt.Sprintf("%s %s via %s (%d in %dms)", a.Status, a.IDNumber, a.SourceSystem, a.ResultCount, a.ResponseTimeMs)
}
