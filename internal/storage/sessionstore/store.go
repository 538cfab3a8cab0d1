package sessionstore

import (
	"context"
	"time"
)

// Store holds server-side session state: token → user id. Entries expire a
// fixed TTL after creation (not sliding). Implementations are safe for
// concurrent use.
type Store interface {
	Create(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// Get returns the bound user id, or app_errors.ErrSessionNotFound for
	// missing and expired tokens.
	Get(ctx context.Context, token string) (int64, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
}
