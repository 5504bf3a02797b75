package verification

import (
	"context"
	"math/rand/v2"
	"time"
)

// LatencySimulator injects artificial delay into the legacy verification path
// for demo realism. Core logic never sleeps directly; tests substitute
// NoLatency.
type LatencySimulator interface {
	Wait(ctx context.Context)
}

// RandomLatency waits a uniformly random duration in [Min, Max].
type RandomLatency struct {
	Min time.Duration
	Max time.Duration
}

func (l RandomLatency) Wait(ctx context.Context) {
	d := l.Min
	if l.Max > l.Min {
		d += rand.N(l.Max - l.Min)
	}
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// NoLatency performs no delay.
type NoLatency struct{}

func (NoLatency) Wait(context.Context) {}
