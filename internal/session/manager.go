package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"leavepanel/internal/upstream"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the well-known key the signed session reference lives under.
const CookieName = "leave_panel_session"

// Manager drives the session lifecycle: login resolves and persists, resolve
// re-validates on every guarded entry (fail closed), logout clears.
type Manager struct {
	Store  *Store
	API    *upstream.Client
	Secret []byte
	TTL    time.Duration
}

func NewManager(store *Store, api *upstream.Client, secret []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{Store: store, API: api, Secret: secret, TTL: ttl}
}

// Login persists the freshly issued upstream token and resolves its identity.
// A resolution failure here is surfaced to the caller and no session is
// created; an explicit login must never silently drop into a logged-out state.
func (m *Manager) Login(ctx context.Context, token string) (Session, error) {
	identity, err := m.API.WithToken(token).Me(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("resolve identity after login: %w", err)
	}

	now := time.Now()
	sess := Session{
		ID:        newSessionID(),
		Token:     token,
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}
	if err := m.Store.Insert(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Resolve validates a persisted session cookie. Identity is re-resolved
// against the leave API so a revoked or expired upstream token tears the
// session down; any failure leaves a clean logged-out state.
func (m *Manager) Resolve(ctx context.Context, cookieValue string) (Session, error) {
	id, err := m.parseCookie(cookieValue)
	if err != nil {
		return Session{}, err
	}

	sess, err := m.Store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(time.Now()) {
		m.discard(ctx, sess.ID)
		return Session{}, fmt.Errorf("session %s expired", sess.ID)
	}

	identity, err := m.API.WithToken(sess.Token).Me(ctx)
	if err != nil {
		// Fail closed: the persisted token is no longer good, discard it.
		m.discard(ctx, sess.ID)
		return Session{}, fmt.Errorf("session token rejected: %w", err)
	}

	if identity != sess.Identity {
		sess.Identity = identity
		if err := m.Store.UpdateIdentity(ctx, sess.ID, identity); err != nil {
			log.Printf("[SESSION] action=refresh_identity msg=%v", err)
		}
	}
	return sess, nil
}

// Logout clears the session row synchronously.
func (m *Manager) Logout(ctx context.Context, sessionID string) {
	m.discard(ctx, sessionID)
}

// LogoutCookie clears the session a cookie refers to, without any identity
// round trip. An unparsable cookie simply means there is nothing to clear.
func (m *Manager) LogoutCookie(ctx context.Context, cookieValue string) {
	if id, err := m.parseCookie(cookieValue); err == nil {
		m.discard(ctx, id)
	}
}

// Invalidate tears a session down after the API answered 401 mid-operation.
func (m *Manager) Invalidate(ctx context.Context, sessionID string) {
	m.discard(ctx, sessionID)
}

func (m *Manager) discard(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := m.Store.Delete(ctx, sessionID); err != nil {
		log.Printf("[SESSION] action=discard msg=%v", err)
	}
}

// CookieValue mints the signed cookie referencing a session row.
func (m *Manager) CookieValue(sess Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"exp": sess.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

func (m *Manager) parseCookie(value string) (string, error) {
	token, err := jwt.Parse(value, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session cookie: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected session cookie claims")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", fmt.Errorf("session cookie missing sid")
	}
	return sid, nil
}

func newSessionID() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(buf)
}
