package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementJar/IDV-sub000/pkg/platform/audit"
)

// recordingSink captures appended events and can fail selectively.
type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	fail   map[string]error
}

func (s *recordingSink) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.fail[event.ID]; ok {
		return err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) all() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.Event{}, s.events...)
}

func TestWorkerDrainsPublishedEvents(t *testing.T) {
	sink := &recordingSink{}
	publisher := audit.NewPublisher(8, slog.New(slog.DiscardHandler))
	worker := audit.NewWorker(sink, publisher.Inbox(), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	publisher.Publish(audit.Event{ID: "e-1", Status: "Found"})
	publisher.Publish(audit.Event{ID: "e-2", Status: "NotFound"})

	require.Eventually(t, func() bool {
		return len(sink.all()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	got := sink.all()
	assert.Equal(t, "e-1", got[0].ID)
	assert.Equal(t, "e-2", got[1].ID)
}

func TestWorkerSurvivesSinkFailure(t *testing.T) {
	sink := &recordingSink{fail: map[string]error{"bad": errors.New("broker down")}}
	publisher := audit.NewPublisher(8, slog.New(slog.DiscardHandler))
	worker := audit.NewWorker(sink, publisher.Inbox(), slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	publisher.Publish(audit.Event{ID: "bad"})
	publisher.Publish(audit.Event{ID: "good"})

	// The failed event is dropped; the next one still lands.
	require.Eventually(t, func() bool {
		got := sink.all()
		return len(got) == 1 && got[0].ID == "good"
	}, time.Second, 10*time.Millisecond)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	// No worker draining: a buffer of one accepts one event and drops the
	// rest without blocking.
	publisher := audit.NewPublisher(1, slog.New(slog.DiscardHandler))

	doneIn := make(chan struct{})
	go func() {
		publisher.Publish(audit.Event{ID: "first"})
		publisher.Publish(audit.Event{ID: "dropped"})
		close(doneIn)
	}()

	select {
	case <-doneIn:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}

	event := <-publisher.Inbox()
	assert.Equal(t, "first", event.ID)
	select {
	case extra := <-publisher.Inbox():
		t.Fatalf("unexpected extra event %q", extra.ID)
	default:
	}
}
