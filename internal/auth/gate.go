// Package auth implements the shared-secret admin gate. It is not per-user
// authentication: anyone holding the secret is the administrator.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

// SessionKey is the session entry set while the browser session is authenticated.
const SessionKey = "admin_authenticated"

// ErrInvalidSecret is reported to callers when the submitted secret does not match.
var ErrInvalidSecret = errors.New("access denied: incorrect password")

// Session is the per-browser state the gate reads and writes. The Fiber
// session middleware satisfies it.
type Session interface {
	Get(key any) any
	Set(key, value any)
	Delete(key any)
}

// SecretSource decides whether a trimmed secret equals the reference value.
type SecretSource interface {
	MatchSecret(ctx context.Context, secret string) (bool, error)
}

// StaticSecret is a SecretSource backed by a configured constant.
type StaticSecret string

// MatchSecret compares secret to the constant.
func (s StaticSecret) MatchSecret(_ context.Context, secret string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(s), []byte(secret)) == 1, nil
}

// Gate checks the admin secret and tracks the authenticated flag in a session.
type Gate struct {
	source SecretSource
}

// NewGate creates a gate checking secrets against source.
func NewGate(source SecretSource) *Gate {
	return &Gate{source: source}
}

// Login compares the trimmed secret to the reference value. On an exact match
// it sets the session flag and returns true; otherwise the session is left
// untouched. A non-nil error means the reference value could not be read.
func (g *Gate) Login(ctx context.Context, sess Session, secret string) (bool, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" || sess == nil {
		return false, nil
	}

	ok, err := g.source.MatchSecret(ctx, secret)
	if err != nil || !ok {
		return false, err
	}

	sess.Set(SessionKey, true)
	return true, nil
}

// IsAuthenticated reads the session flag.
func (g *Gate) IsAuthenticated(sess Session) bool {
	if sess == nil {
		return false
	}
	v, _ := sess.Get(SessionKey).(bool)
	return v
}

// Logout clears the session flag.
func (g *Gate) Logout(sess Session) {
	if sess == nil {
		return
	}
	sess.Delete(SessionKey)
}
