package audit

import "log/slog"

// Publisher buffers events on their way to the worker. Publish never blocks
// the request path: when the buffer is full the event is dropped and counted
// against a warning log.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Publish enqueues an event, dropping it when the buffer is full.
func (p *Publisher) Publish(event Event) {
	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.Warn("audit buffer full, dropping event",
				"event_id", event.ID,
				"status", event.Status,
			)
		}
	}
}

// Inbox exposes the channel the worker drains.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
