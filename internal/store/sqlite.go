package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/samber/lo"
	_ "modernc.org/sqlite"
)

// SQLite bundles the repository implementations over one database handle.
type SQLite struct {
	db *sql.DB
}

// Open opens (creating when absent) the SQLite database at path with the
// pragmas the service relies on.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer, keep the pool small.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) FindByUsername(ctx context.Context, username string) (User, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("id", "username", "password_hash", "created_at").From("users")
	sb.Where(sb.Equal("username", username))

	query, args := sb.Build()

	var u User
	err := s.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func (s *SQLite) CreateWithDefaults(ctx context.Context, username, passwordHash string, codes []string) (User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertInto("users").
		Cols("id", "username", "password_hash", "created_at").
		Values(u.ID, u.Username, u.PasswordHash, u.CreatedAt)

	query, args := ib.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	if len(codes) > 0 {
		pb := sqlbuilder.SQLite.NewInsertBuilder()
		pb.InsertInto("preferences").Cols("user_id", "sector_code", "enabled")
		for _, code := range codes {
			pb.Values(u.ID, code, true)
		}

		query, args := pb.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return User{}, fmt.Errorf("failed to insert preferences: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return User{}, fmt.Errorf("failed to commit: %w", err)
	}
	return u, nil
}

func (s *SQLite) EnabledCodesFor(ctx context.Context, userID string) (map[string]bool, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("sector_code").From("preferences")
	sb.Where(sb.Equal("user_id", userID), sb.Equal("enabled", true))

	query, args := sb.Build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load enabled codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes[code] = true
	}
	return codes, rows.Err()
}

func (s *SQLite) SetEnabled(ctx context.Context, userID string, selected []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update("preferences").Set(ub.Assign("enabled", false))
	ub.Where(ub.Equal("user_id", userID))

	query, args := ub.Build()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to disable preferences: %w", err)
	}

	if len(selected) > 0 {
		ub = sqlbuilder.SQLite.NewUpdateBuilder()
		ub.Update("preferences").Set(ub.Assign("enabled", true))
		ub.Where(ub.Equal("user_id", userID), ub.In("sector_code", lo.ToAnySlice(selected)...))

		query, args = ub.Build()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to enable preferences: %w", err)
		}
	}

	return tx.Commit()
}

// isUniqueViolation detects SQLite unique constraint failures without
// depending on driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
