package verification

import (
	"context"
	"errors"
)

// ErrNotFound reports that no record matched a store lookup.
var ErrNotFound = errors.New("verification: record not found")

// SourceRecordStore is the read-only store of per-source identity records.
//
// The data model keeps a single record per ID number across all sources, yet
// FindByIDAndSource still takes a source name: a real multi-source deployment
// would hold independent per-source truth, and the per-source interface is
// what the trace semantics depend on. Do not collapse the two lookups.
type SourceRecordStore interface {
	// FindByIDAndSource returns the record held by one source for an exact
	// ID number, or ErrNotFound.
	FindByIDAndSource(ctx context.Context, idNumber, sourceName string) (*SourceRecord, error)

	// SearchByIDNumber returns every record whose ID number contains the
	// given fragment, across all sources. An empty result is not an error.
	SearchByIDNumber(ctx context.Context, idNumber string) ([]SourceRecord, error)

	// ListAll returns every record, ordered by (source, ID number).
	ListAll(ctx context.Context) ([]SourceRecord, error)
}

// AttemptStore is the append-only log of verification attempts. Rows are
// never mutated or deleted; the aggregate queries feed the dashboard.
type AttemptStore interface {
	Append(ctx context.Context, attempt VerificationAttempt) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[AttemptStatus]int64, error)
	AverageResponseTimeMs(ctx context.Context) (float64, error)
}

// RegisteredIDStore exposes the ID numbers already claimed by registered
// clients, so test-data listings can exclude them.
type RegisteredIDStore interface {
	RegisteredIDNumbers(ctx context.Context) (map[string]struct{}, error)
}
