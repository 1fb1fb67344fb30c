// Package auth implements account registration, login, and profile updates.
// It issues HS256 bearer tokens carrying the user id and role; validation on
// protected routes is handled by the jwtauth middleware in the API layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventboard/events-api/pkg/events"
)

// Service verifies credentials against stored bcrypt hashes and issues tokens.
type Service struct {
	log      *slog.Logger
	users    events.UserRepository
	tokens   *jwtauth.JWTAuth
	tokenTTL time.Duration
}

// New returns a new instance of the auth service.
func New(log *slog.Logger, users events.UserRepository, tokens *jwtauth.JWTAuth, tokenTTL time.Duration) *Service {
	return &Service{
		log:      log,
		users:    users,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register creates a new account with the default role.
func (s *Service) Register(ctx context.Context, email, password string) (*events.User, error) {
	const op = "auth.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("failed to hash password", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &events.User{
		Email:        email,
		PasswordHash: hash,
		Role:         events.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, events.ErrUserExists) {
			return nil, events.ErrUserExists
		}
		s.log.Error("failed to save user", "op", op, "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, events.ErrUserNotFound) {
			return "", events.ErrInvalidCredentials
		}
		s.log.Error("failed to get user", "op", op, "error", err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", events.ErrInvalidCredentials
	}

	_, token, err := s.tokens.Encode(map[string]interface{}{
		"sub":  fmt.Sprintf("%d", user.ID),
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	})
	if err != nil {
		s.log.Error("failed to sign token", "op", op, "error", err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// GetUser loads an account by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*events.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// UpdateProfile changes the email and/or password of an account. Empty
// arguments leave the corresponding field untouched.
func (s *Service) UpdateProfile(ctx context.Context, id int64, email, password string) (*events.User, error) {
	const op = "auth.UpdateProfile"

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			s.log.Error("failed to hash password", "op", op, "error", err)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
