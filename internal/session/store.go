// Package session owns the panel-side session: the upstream bearer token and
// the identity resolved from it. Rows live in MySQL; the browser only holds a
// signed cookie referencing a row.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"leavepanel/internal/domain/models"
)

type Session struct {
	ID        string
	Token     string
	Identity  models.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &Store{DB: db}, nil
}

// EnsureSchema creates the sessions table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS panel_sessions (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	token TEXT NOT NULL,
	identity JSON NOT NULL,
	created_at DATETIME NOT NULL,
	expires_at DATETIME NOT NULL
)`
	if _, err := s.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("ensure panel_sessions schema: %w", err)
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, sess Session) error {
	identityJSON, err := json.Marshal(sess.Identity)
	if err != nil {
		return fmt.Errorf("encode session identity: %w", err)
	}

	const q = `
INSERT INTO panel_sessions (id, token, identity, created_at, expires_at)
VALUES (?, ?, ?, ?, ?)`
	if _, err := s.DB.ExecContext(ctx, q, sess.ID, sess.Token, identityJSON, sess.CreatedAt, sess.ExpiresAt); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	const q = `
SELECT id, token, identity, created_at, expires_at
FROM panel_sessions
WHERE id = ?`

	var (
		sess         Session
		identityJSON []byte
	)
	err := s.DB.QueryRowContext(ctx, q, id).Scan(&sess.ID, &sess.Token, &identityJSON, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Session{}, fmt.Errorf("session %s: %w", id, err)
		}
		return Session{}, fmt.Errorf("query session: %w", err)
	}
	if len(identityJSON) > 0 {
		if err := json.Unmarshal(identityJSON, &sess.Identity); err != nil {
			return Session{}, fmt.Errorf("decode session identity: %w", err)
		}
	}
	return sess, nil
}

// UpdateIdentity stores a freshly resolved identity on an existing row.
func (s *Store) UpdateIdentity(ctx context.Context, id string, identity models.Identity) error {
	identityJSON, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session identity: %w", err)
	}
	const q = `UPDATE panel_sessions SET identity = ? WHERE id = ?`
	if _, err := s.DB.ExecContext(ctx, q, identityJSON, id); err != nil {
		return fmt.Errorf("update session identity: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM panel_sessions WHERE id = ?`
	if _, err := s.DB.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired prunes rows past their expiry.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) error {
	const q = `DELETE FROM panel_sessions WHERE expires_at < ?`
	if _, err := s.DB.ExecContext(ctx, q, now); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
