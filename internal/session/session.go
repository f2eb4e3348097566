// Package session verifies access tokens and tracks the signed-in user.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"edigivault/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

type Session struct {
	AccessToken string
	UserID      string
	Phone       string
	ExpiresAt   time.Time
}

func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Manager verifies bearer tokens against the auth provider's JWKS and
// fans session changes out to subscribers.
type Manager struct {
	logger    *logrus.Logger
	jwksCache *jwk.Cache
	jwksURL   string

	mu          sync.Mutex
	subscribers map[int]func(*Session)
	nextSub     int
}

func NewManager(logger *logrus.Logger, jwksCache *jwk.Cache, jwksURL string) *Manager {
	return &Manager{
		logger:      logger,
		jwksCache:   jwksCache,
		jwksURL:     jwksURL,
		subscribers: make(map[int]func(*Session)),
	}
}

// Verify parses and validates an access token, returning the session it
// represents. Failures of any kind come back as an AuthError.
func (m *Manager) Verify(ctx context.Context, accessToken string) (*Session, error) {
	set, err := m.jwksCache.Lookup(ctx, m.jwksURL)
	if err != nil {
		m.logger.WithError(err).Error("failed to fetch JWKS")
		return nil, &types.AuthError{Reason: "unable to verify credentials"}
	}

	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		m.logger.WithError(err).Debug("failed to parse JWT")
		return nil, &types.AuthError{Reason: "invalid or expired token"}
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return nil, &types.AuthError{Reason: "token has no subject"}
	}

	var phone string
	if err := token.Get("phone", &phone); err != nil {
		m.logger.WithError(err).Debug("no phone claim in JWT")
	}

	session := &Session{
		AccessToken: accessToken,
		UserID:      userID,
		Phone:       phone,
	}
	if exp, ok := token.Expiration(); ok {
		session.ExpiresAt = exp
	}

	return session, nil
}

// OnSessionChange registers a callback invoked on every sign-in and
// sign-out. A sign-out is delivered as nil. The returned func removes the
// subscription.
func (m *Manager) OnSessionChange(fn func(*Session)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// Notify publishes a session change to all subscribers.
func (m *Manager) Notify(session *Session) {
	m.mu.Lock()
	fns := make([]func(*Session), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

// NormalizePhone strips formatting and prefixes the default country code
// when a bare ten digit number is given.
func NormalizePhone(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if len(cleaned) == 10 {
		return "+91" + cleaned
	}
	return "+" + cleaned
}
