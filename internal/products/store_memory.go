package products

import (
	"context"
	"sort"
	"sync"
)

// InMemoryEnrollmentStore is a thread-safe in-memory EnrollmentStore.
type InMemoryEnrollmentStore struct {
	mu       sync.RWMutex
	byClient map[string][]Enrollment
}

func NewInMemoryEnrollmentStore() *InMemoryEnrollmentStore {
	return &InMemoryEnrollmentStore{byClient: make(map[string][]Enrollment)}
}

func (s *InMemoryEnrollmentStore) Create(_ context.Context, enrollment Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byClient[enrollment.ClientID] {
		if existing.ProductCode == enrollment.ProductCode {
			return ErrDuplicate
		}
	}
	s.byClient[enrollment.ClientID] = append(s.byClient[enrollment.ClientID], enrollment)
	return nil
}

func (s *InMemoryEnrollmentStore) ListByClient(_ context.Context, clientID string) ([]Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Enrollment, len(s.byClient[clientID]))
	copy(out, s.byClient[clientID])
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
