package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCookie is returned for cookie values that fail verification.
var ErrInvalidCookie = errors.New("invalid session cookie")

// Claims is what the signed cookie carries: the session id and expiry.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager is the only writer of sessions. It signs the cookie that names a
// session and resolves cookies back to sessions.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the lifetime of new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a new session holding backendToken and returns it together
// with the signed cookie value.
func (m *Manager) Create(ctx context.Context, backendToken string) (*Session, string, error) {
	now := m.now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		Token:     backendToken,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := &Claims{
		SessionID: s.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session cookie: %w", err)
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, "", err
	}
	return s, signed, nil
}

// Resolve verifies a cookie value and loads the session it names.
func (m *Manager) Resolve(ctx context.Context, cookie string) (*Session, error) {
	claims, err := m.parse(cookie)
	if err != nil {
		return nil, err
	}
	s, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		return nil, ErrExpired
	}
	return s, nil
}

// SessionID extracts the session id from a cookie value without touching the store.
func (m *Manager) SessionID(cookie string) (string, error) {
	claims, err := m.parse(cookie)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}

// Destroy deletes the session. Requests already holding its token finish with it.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) parse(cookie string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(cookie, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure token is signed using HS256
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %T", t.Method)
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidCookie
	}
	return claims, nil
}
