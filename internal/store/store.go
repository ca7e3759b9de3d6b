// Package store persists accounts, sector preferences and sessions in SQLite
// behind narrow repository interfaces.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned when creating a user whose username is
	// already registered.
	ErrUsernameTaken = errors.New("username already exists")
)

// User is a registered account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository is the account persistence capability.
type UserRepository interface {
	// FindByUsername returns ErrNotFound when the username is unknown.
	FindByUsername(ctx context.Context, username string) (User, error)

	// CreateWithDefaults creates the user plus one enabled preference row per
	// sector code, atomically. Returns ErrUsernameTaken when the username is
	// already registered.
	CreateWithDefaults(ctx context.Context, username, passwordHash string, codes []string) (User, error)
}

// PreferenceRepository is the sector preference persistence capability.
type PreferenceRepository interface {
	// EnabledCodesFor returns the set of sector codes the user has enabled.
	EnabledCodesFor(ctx context.Context, userID string) (map[string]bool, error)

	// SetEnabled enables exactly the user's preference rows whose code is in
	// selected and disables the rest. Codes without an existing row are
	// ignored.
	SetEnabled(ctx context.Context, userID string, selected []string) error
}
