package auth

import (
	"context"
	"errors"
)

// ErrNotFound reports that no user matched a store lookup.
var ErrNotFound = errors.New("auth: user not found")

// UserStore holds operator accounts.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
