// Package audit provides the asynchronous pipeline that mirrors verification
// attempt outcomes to an external sink. The pipeline is observational: the
// synchronous attempt row written by the verification service is the system
// of record, and losing an audit event never fails a search.
package audit

import (
	"context"
	"time"
)

// Event captures one verification attempt outcome plus request enrichment.
// Keep it transport-agnostic so sinks can fan out.
type Event struct {
	ID             string
	Timestamp      time.Time
	UserID         string
	IDNumber       string
	Status         string
	ResultCount    int
	ResponseTimeMs int64
	SourceSystem   string
	// Request enrichment, populated from middleware context when available.
	RequestID string
	ClientIP  string
	UserAgent string
}

// Sink receives drained events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
