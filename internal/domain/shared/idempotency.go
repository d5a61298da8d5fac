package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so a retried
// non-idempotent write (payment, expense) is applied at most once.
type IdempotencyStore interface {
	// MarkProcessed claims a key for ttl.
	// Returns true if the key was newly claimed, false if it was already claimed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key is currently claimed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Forget releases a key so the request may be retried, used when the guarded write failed
	Forget(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
