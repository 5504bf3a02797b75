package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// InMemoryUserStore keeps operator accounts in memory, keyed by username.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[string]User)}
}

// Add replaces any existing user with the same username.
func (s *InMemoryUserStore) Add(users ...User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.Username] = u
	}
}

func (s *InMemoryUserStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	out := user
	return &out, nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			out := user
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// SeedUsers returns the demo operator accounts. Password hashing happens at
// seed time so no plaintext credential is stored.
func SeedUsers() []User {
	return []User{
		newSeedUser("admin", "Demo Administrator", "admin", "admin123"),
		newSeedUser("agent", "Registration Agent", "agent", "agent123"),
	}
}

func newSeedUser(username, fullName, role, password string) User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost; the constant above is valid.
		panic(err)
	}
	return User{
		ID:           uuid.NewString(),
		Username:     username,
		FullName:     fullName,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
}
