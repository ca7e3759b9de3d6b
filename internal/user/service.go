// Package user owns account signup and authentication.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/i474232898/astro-dashboard/internal/nasa"
	"github.com/i474232898/astro-dashboard/internal/store"
)

// Signup and authentication failures. The strings are surfaced to users
// verbatim.
var (
	ErrUsernameRequired   = errors.New("Username is required.")
	ErrUsernameTaken      = errors.New("Username already exists.")
	ErrInvalidCredentials = errors.New("Invalid username or password.")
)

// Service implements signup and authentication on top of the user repository.
type Service struct {
	users store.UserRepository
}

func NewService(users store.UserRepository) *Service {
	return &Service{users: users}
}

// Signup registers a new account with every dashboard sector enabled. The
// username check, password policy and creation run in the same order the
// signup form reports errors in.
func (s *Service) Signup(ctx context.Context, username, password string) (store.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return store.User{}, ErrUsernameRequired
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return store.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return store.User{}, fmt.Errorf("failed to check username: %w", err)
	}

	if err := ValidatePassword(password); err != nil {
		return store.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return store.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	codes := lo.Map(nasa.Definitions(), func(d nasa.SectorDefinition, _ int) string {
		return d.Code
	})

	u, err := s.users.CreateWithDefaults(ctx, username, string(hash), codes)
	if errors.Is(err, store.ErrUsernameTaken) {
		return store.User{}, ErrUsernameTaken
	}
	if err != nil {
		return store.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	log.WithFields(log.Fields{"username": u.Username}).Info("user created")
	return u, nil
}

// Authenticate verifies the credentials, returning ErrInvalidCredentials for
// unknown usernames and wrong passwords alike.
func (s *Service) Authenticate(ctx context.Context, username, password string) (store.User, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return store.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return store.User{}, ErrInvalidCredentials
	}
	return u, nil
}
