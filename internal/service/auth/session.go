package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	"EduAble/internal/app_errors"
	"EduAble/internal/storage/sessionstore"
)

// SessionManager issues and resolves server-side sessions. The cookie value
// is "token.signature": the token is an opaque uuid looked up in the store,
// the signature is an HMAC over the token so a forged cookie is rejected
// before the store is consulted. Sessions expire a fixed TTL after creation.
type SessionManager struct {
	store  sessionstore.Store
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(store sessionstore.Store, secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Establish creates a session for the user and returns the signed cookie
// value.
func (m *SessionManager) Establish(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := m.store.Create(ctx, token, userID, m.ttl); err != nil {
		return "", err
	}
	return token + "." + m.sign(token), nil
}

// Resolve returns the user id bound to a cookie value, or
// app_errors.ErrSessionNotFound.
func (m *SessionManager) Resolve(ctx context.Context, cookieValue string) (int64, error) {
	token, ok := m.verify(cookieValue)
	if !ok {
		return 0, app_errors.ErrSessionNotFound
	}
	return m.store.Get(ctx, token)
}

// Destroy removes the session. Unknown or malformed cookies are a no-op.
func (m *SessionManager) Destroy(ctx context.Context, cookieValue string) error {
	token, ok := m.verify(cookieValue)
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, token)
}

func (m *SessionManager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *SessionManager) verify(cookieValue string) (token string, ok bool) {
	token, signature, found := strings.Cut(cookieValue, ".")
	if !found || token == "" {
		return "", false
	}
	expected := m.sign(token)
	if hmac.Equal([]byte(signature), []byte(expected)) {
		return token, true
	}
	return "", false
}
