package clients

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore keeps registered clients in memory, keyed by client ID with a
// unique index on ID number.
type InMemoryStore struct {
	mu         sync.RWMutex
	byID       map[string]Client
	byIDNumber map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:       make(map[string]Client),
		byIDNumber: make(map[string]string),
	}
}

func (s *InMemoryStore) Create(_ context.Context, client Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byIDNumber[client.IDNumber]; ok {
		return ErrDuplicate
	}
	s.byID[client.ID] = client
	s.byIDNumber[client.IDNumber] = client.ID
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := client
	return &out, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Client, 0, len(s.byID))
	for _, client := range s.byID {
		out = append(out, client)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byID)), nil
}

func (s *InMemoryStore) CountBySource(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int64)
	for _, client := range s.byID {
		counts[client.SourceSystem]++
	}
	return counts, nil
}

func (s *InMemoryStore) RegisteredIDNumbers(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.byIDNumber))
	for idNumber := range s.byIDNumber {
		out[idNumber] = struct{}{}
	}
	return out, nil
}
