package clients

import (
	"context"
	"errors"
)

// Store lookup sentinels.
var (
	ErrNotFound  = errors.New("clients: client not found")
	ErrDuplicate = errors.New("clients: id number already registered")
)

// Store holds registered clients.
type Store interface {
	Create(ctx context.Context, client Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Count(ctx context.Context) (int64, error)
	CountBySource(ctx context.Context) (map[string]int64, error)

	// RegisteredIDNumbers satisfies verification.RegisteredIDStore so
	// test-data listings can exclude claimed identities.
	RegisteredIDNumbers(ctx context.Context) (map[string]struct{}, error)
}
