package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	jwttoken "github.com/ClementJar/IDV-sub000/internal/jwt_token"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
)

// Service authenticates operators and issues access tokens.
type Service struct {
	users    UserStore
	tokens   *jwttoken.JWTService
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewService(users UserStore, tokens *jwttoken.JWTService, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login verifies credentials and returns a bearer token. Unknown usernames
// and wrong passwords produce the same error so the response does not leak
// which accounts exist.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "lookup user", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "login failed",
			"username", username,
		)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "generate access token", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresIn: s.tokenTTL,
		User:      *user,
	}, nil
}

// Me returns the account behind an authenticated request.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "lookup user", err)
	}
	return user, nil
}
