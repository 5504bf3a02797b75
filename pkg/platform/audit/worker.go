package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and hands them to the sink.
// Sink failures are logged and the event dropped; the worker keeps running
// because this pipeline must never become a reason the service stops.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				if w.logger != nil {
					w.logger.ErrorContext(ctx, "audit sink append failed",
						"event_id", event.ID,
						"error", err,
					)
				}
			}
		}
	}
}
