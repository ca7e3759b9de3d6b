package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SessionStorage adapts the SQLite handle to fiber's session Storage
// interface so sessions persist next to the accounts they belong to. Expiry
// timestamps are stored as unix nanoseconds; zero means no expiry.
type SessionStorage struct {
	db *sql.DB
}

// Sessions returns the fiber session storage view of this database.
func (s *SQLite) Sessions() *SessionStorage {
	return &SessionStorage{db: s.db}
}

// Get returns the stored value, or nil when the key is missing or expired.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	var (
		v   []byte
		exp int64
	)
	err := s.db.QueryRow("SELECT v, exp FROM sessions WHERE k = ?", key).Scan(&v, &exp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if exp != 0 && exp <= time.Now().UnixNano() {
		return nil, nil
	}
	return v, nil
}

// Set upserts the value. A zero exp stores the session without expiry.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	var expires int64
	if exp > 0 {
		expires = time.Now().Add(exp).UnixNano()
	}
	_, err := s.db.Exec(
		"INSERT INTO sessions (k, v, exp) VALUES (?, ?, ?) ON CONFLICT (k) DO UPDATE SET v = excluded.v, exp = excluded.exp",
		key, val, expires,
	)
	return err
}

func (s *SessionStorage) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE k = ?", key)
	return err
}

// Reset drops every session.
func (s *SessionStorage) Reset() error {
	_, err := s.db.Exec("DELETE FROM sessions")
	return err
}

// Close is a no-op: the underlying handle is shared with the repositories
// and closed by its owner.
func (s *SessionStorage) Close() error {
	return nil
}

// PurgeExpired deletes sessions whose expiry has passed and returns how many
// were removed.
func (s *SessionStorage) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE exp != 0 AND exp <= ?", time.Now().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
