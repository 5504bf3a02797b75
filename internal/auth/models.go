package auth

import "time"

// User is an operator account able to run verification searches and register
// clients.
type User struct {
	ID           string
	Username     string
	FullName     string
	Role         string
	PasswordHash []byte
	CreatedAt    time.Time
}

// LoginResult carries the issued token and its subject.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      User
}
